// internal/app/system/countries/countries.go
//
// The countries the platform currently operates in. Codes are
// lowercase ISO 3166-1 alpha-2.
package countries

// Country is a code/name pair for display and selection lists.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var all = []Country{
	{Code: "it", Name: "Italy"},
	{Code: "nl", Name: "Netherlands"},
	{Code: "se", Name: "Sweden"},
	{Code: "lb", Name: "Lebanon"},
	{Code: "tn", Name: "Tunisia"},
	{Code: "ma", Name: "Morocco"},
}

// All returns the supported countries in display order.
func All() []Country {
	out := make([]Country, len(all))
	copy(out, all)
	return out
}

// Name returns the display name for a country code, or "Global" when
// the code is unknown or empty.
func Name(code string) string {
	for _, c := range all {
		if c.Code == code {
			return c.Name
		}
	}
	return "Global"
}

// IsSupported reports whether the code names a supported country.
func IsSupported(code string) bool {
	for _, c := range all {
		if c.Code == code {
			return true
		}
	}
	return false
}
