package metadata

import "unicode/utf16"

// utf16ToString decodes units as UTF-16 and truncates at the first null
// terminator, which null-padded fixed-width name fields carry
func utf16ToString(units []uint16) string {
	for i, u := range units {
		if u == 0 {
			units = units[:i]
			break
		}
	}
	return string(utf16.Decode(units))
}
