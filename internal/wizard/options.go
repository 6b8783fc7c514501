package wizard

import "slices"

const (
	DefaultCountryCode = "+91"
	DefaultLanguage    = "en"
)

// Option is a selectable value with its display label.
type Option struct {
	Value string
	Label string
}

// Languages are the consultation languages offered in step three.
var Languages = []Option{
	{"en", "English"},
	{"hi", "हिंदी (Hindi)"},
	{"bn", "বাংলা (Bengali)"},
	{"es", "Español (Spanish)"},
	{"fr", "Français (French)"},
	{"de", "Deutsch (German)"},
	{"zh", "中文 (Chinese)"},
	{"ja", "日本語 (Japanese)"},
	{"ko", "한국어 (Korean)"},
	{"ar", "العربية (Arabic)"},
}

// CountryCodes are the dial codes offered for the phone and WhatsApp
// numbers. India first, the rest roughly by customer volume.
var CountryCodes = []Option{
	{"+91", "🇮🇳 India (+91)"},
	{"+1", "🇺🇸 USA / Canada (+1)"},
	{"+44", "🇬🇧 United Kingdom (+44)"},
	{"+971", "🇦🇪 UAE (+971)"},
	{"+61", "🇦🇺 Australia (+61)"},
	{"+65", "🇸🇬 Singapore (+65)"},
	{"+977", "🇳🇵 Nepal (+977)"},
	{"+880", "🇧🇩 Bangladesh (+880)"},
	{"+94", "🇱🇰 Sri Lanka (+94)"},
	{"+966", "🇸🇦 Saudi Arabia (+966)"},
	{"+974", "🇶🇦 Qatar (+974)"},
	{"+965", "🇰🇼 Kuwait (+965)"},
	{"+968", "🇴🇲 Oman (+968)"},
	{"+60", "🇲🇾 Malaysia (+60)"},
	{"+64", "🇳🇿 New Zealand (+64)"},
	{"+27", "🇿🇦 South Africa (+27)"},
	{"+49", "🇩🇪 Germany (+49)"},
	{"+33", "🇫🇷 France (+33)"},
	{"+34", "🇪🇸 Spain (+34)"},
	{"+81", "🇯🇵 Japan (+81)"},
	{"+82", "🇰🇷 South Korea (+82)"},
	{"+86", "🇨🇳 China (+86)"},
}

// IndexOf returns the position of value in opts, or -1.
func IndexOf(opts []Option, value string) int {
	return slices.IndexFunc(opts, func(o Option) bool { return o.Value == value })
}

// LabelFor returns the label for value, or value itself when unknown.
func LabelFor(opts []Option, value string) string {
	if i := IndexOf(opts, value); i >= 0 {
		return opts[i].Label
	}
	return value
}
