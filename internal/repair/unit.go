package repair

import "regexp"

var optionNumberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// unitParts splits an option string around its first numeric literal so
// a regenerated value keeps the surrounding unit text:
// "約 12.5 元" -> ("約 ", " 元"), "30%" -> ("", "%").
func unitParts(option string) (prefix, suffix string) {
	loc := optionNumberRe.FindStringIndex(option)
	if loc == nil {
		return "", ""
	}
	return option[:loc[0]], option[loc[1]:]
}
