package domain

import (
	"testing"
)

// FuzzParseAcademicID checks that ID parsing never panics on arbitrary input
// and always returns either a usable ID or an error, never both.
func FuzzParseAcademicID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("not-a-uuid")
	f.Add("'; DROP TABLE events;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("550e8400-e29b-41d4-a716-446655440000\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseAcademicID(input)

		if err == nil {
			if id.IsNil() {
				t.Errorf("parse accepted %q but produced the nil id", input)
			}
			// A parsed ID must survive a string round-trip.
			again, err := ParseAcademicID(id.String())
			if err != nil {
				t.Errorf("round-trip of %q failed: %v", input, err)
			}
			if again != id {
				t.Errorf("round-trip of %q changed the id", input)
			}
			return
		}
		if !id.IsNil() {
			t.Errorf("parse of %q errored but returned a non-nil id", input)
		}
	})
}
