package domain

// DeviceClass groups viewports by the kind of device they emulate.
type DeviceClass string

const (
	DeviceDesktop DeviceClass = "desktop"
	DeviceTablet  DeviceClass = "tablet"
	DeviceMobile  DeviceClass = "mobile"
)

// ValidDeviceClasses enumerates all recognized device classes.
var ValidDeviceClasses = []DeviceClass{DeviceDesktop, DeviceTablet, DeviceMobile}

// Viewport is a named browser window size.
type Viewport struct {
	Name        string      `yaml:"name"         json:"name"`
	Width       int         `yaml:"width"        json:"width"`
	Height      int         `yaml:"height"       json:"height"`
	DeviceClass DeviceClass `yaml:"device_class" json:"device_class"`
}

func (v Viewport) IsMobile() bool { return v.DeviceClass == DeviceMobile }

// DefaultViewports returns the fixed capture matrix.
func DefaultViewports() []Viewport {
	return []Viewport{
		{Name: "desktop-xl", Width: 1920, Height: 1080, DeviceClass: DeviceDesktop},
		{Name: "desktop", Width: 1440, Height: 900, DeviceClass: DeviceDesktop},
		{Name: "tablet", Width: 768, Height: 1024, DeviceClass: DeviceTablet},
		{Name: "mobile", Width: 375, Height: 667, DeviceClass: DeviceMobile},
		{Name: "mobile-sm", Width: 320, Height: 568, DeviceClass: DeviceMobile},
	}
}

// DefaultThemes returns the ordered theme sweep. Order matters: each
// iteration removes the classes applied by earlier ones.
func DefaultThemes() []string {
	return []string{
		"light", "dark", "minimal", "maximal", "night-interior",
		"day-exterior", "golden-hour", "intimate", "dramatic", "memory",
	}
}

// FindViewport returns the viewport with the given name from set.
func FindViewport(set []Viewport, name string) (Viewport, bool) {
	for _, v := range set {
		if v.Name == name {
			return v, true
		}
	}
	return Viewport{}, false
}

// IsKnownViewport reports whether v is exactly one of the configured viewports.
func IsKnownViewport(set []Viewport, v Viewport) bool {
	known, ok := FindViewport(set, v.Name)
	return ok && known == v
}

func isValidDeviceClass(dc DeviceClass) bool {
	for _, c := range ValidDeviceClasses {
		if c == dc {
			return true
		}
	}
	return false
}
