package extraction

import "regexp"

var emailPattern = regexp.MustCompile(`(?i)[a-zA-Z0-9._-]+@[a-zA-Z0-9._-]+\.[a-zA-Z0-9_-]+`)

// ExtractMentions returns every email-address-shaped substring in the
// transcript, in order of appearance. Duplicates are preserved; the list only
// grounds the extraction prompt and need not be exhaustive.
func ExtractMentions(transcript string) []string {
	mentions := emailPattern.FindAllString(transcript, -1)
	if mentions == nil {
		return []string{}
	}
	return mentions
}
