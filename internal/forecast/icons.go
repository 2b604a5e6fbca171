package forecast

// Icon is a semantic icon identifier rendered as a "bx bx-<icon>" class
type Icon string

const (
	IconSun            Icon = "sun"
	IconMoon           Icon = "moon"
	IconCloud          Icon = "cloud"
	IconCloudRain      Icon = "cloud-rain"
	IconCloudLightning Icon = "cloud-lightning"
	IconCloudSnow      Icon = "cloud-snow"
	IconWater          Icon = "water"
)

// provider icon code -> icon; day ("d") and night ("n") variants
var iconTable = map[string]Icon{
	"01d": IconSun,
	"01n": IconMoon,
	"02d": IconSun,
	"02n": IconMoon,
	"03d": IconCloud,
	"03n": IconCloud,
	"04d": IconCloud,
	"04n": IconCloud,
	"09d": IconCloudRain,
	"09n": IconCloudRain,
	"10d": IconCloudRain,
	"10n": IconCloudRain,
	"11d": IconCloudLightning,
	"11n": IconCloudLightning,
	"13d": IconCloudSnow,
	"13n": IconCloudSnow,
	"50d": IconWater,
	"50n": IconWater,
}

// IconFor maps a provider icon code. Unknown codes yield ok == false, which
// renders as no icon.
func IconFor(code string) (Icon, bool) {
	icon, ok := iconTable[code]
	return icon, ok
}

// IconName is IconFor flattened to a string, empty for unknown codes.
func IconName(code string) string {
	icon, _ := IconFor(code)
	return string(icon)
}
