package common

// Virtual key codes delivered by window key callbacks. Printable keys use their ASCII value,
// matching GLFW.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeySpace = 32  // Spacebar (ASCII)
	KeyM     = 77  // M key (ASCII)
	KeyR     = 82  // R key (ASCII)
	KeyT     = 84  // T key (ASCII)
)
