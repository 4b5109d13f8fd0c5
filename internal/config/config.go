package config

const (
	AppName    = "Tremors Music"
	AppID      = "com.tremors.music"
	AppVersion = "0.1.0"

	// SidecarName is the base name of the bundled backend executable.
	SidecarName = "tremorsmusic"

	MinWindowWidth  = 1024
	MinWindowHeight = 700
)

// Profile is the build configuration the binary was compiled with.
type Profile int

const (
	Development Profile = iota
	Production
)

func (p Profile) String() string {
	switch p {
	case Development:
		return "development"
	case Production:
		return "production"
	default:
		return "unknown"
	}
}

// Config carries the compile-time settings of the desktop shell.
// Nothing here is read from flags, the environment or files.
type Config struct {
	AppName     string
	AppID       string
	AppVersion  string
	SidecarName string
	Profile     Profile

	WindowWidth  float32
	WindowHeight float32

	EventBufferSize int
}

func Default() Config {
	return Config{
		AppName:         AppName,
		AppID:           AppID,
		AppVersion:      AppVersion,
		SidecarName:     SidecarName,
		Profile:         BuildProfile,
		WindowWidth:     MinWindowWidth,
		WindowHeight:    MinWindowHeight,
		EventBufferSize: 1000,
	}
}
