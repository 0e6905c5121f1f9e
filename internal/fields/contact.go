package fields

import "strings"

// ContactSeparator joins adjacent contact items.
const ContactSeparator = " || "

// JoinContact joins the non-blank items in the order given, placing the
// separator only between adjacent survivors.
func JoinContact(items ...string) string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if IsBlank(item) {
			continue
		}
		kept = append(kept, strings.TrimSpace(item))
	}
	return strings.Join(kept, ContactSeparator)
}
