package domain

// declarationCountryCodes maps 2-letter origin codes to the 3-digit numeric
// codes the customs declaration format expects. Leading zeros are
// significant, hence strings.
var declarationCountryCodes = map[string]string{
	"CN": "720",
	"ID": "700",
	"KH": "696",
	"VN": "690",
	"US": "400",
	"TW": "736",
	"IT": "005",
	"RO": "066",
	"JO": "628",
	"NI": "432",
	"AQ": "891",
	"TH": "680",
	"LK": "669",
	"AL": "070",
	"SG": "706",
	"GT": "416",
	"CO": "480",
	"CM": "302",
	"PH": "708",
	"TR": "052",
	"CA": "404",
	"SV": "428",
	"HK": "740",
}

// DeclarationCountryCode returns the 3-digit numeric declaration code for a
// 2-letter country code, or "" when unmapped.
func DeclarationCountryCode(alpha2 string) string {
	return declarationCountryCodes[alpha2]
}

// DeclarationCountryCodes returns a copy of the full mapping.
func DeclarationCountryCodes() map[string]string {
	out := make(map[string]string, len(declarationCountryCodes))
	for k, v := range declarationCountryCodes {
		out[k] = v
	}
	return out
}
