package advisor

import "strings"

// FormatMessage fills the %s slots of template with args in order. Slots
// without an argument are left empty and surplus arguments are dropped, so a
// custom message may use fewer slots than the rule provides. "%%" renders a
// single percent sign; any other verb is kept as written.
func FormatMessage(template string, args ...string) string {
	var b strings.Builder
	b.Grow(len(template))
	next := 0
	for i := 0; i < len(template); i++ {
		ch := template[i]
		if ch != '%' || i+1 == len(template) {
			b.WriteByte(ch)
			continue
		}
		switch template[i+1] {
		case 's':
			if next < len(args) {
				b.WriteString(args[next])
			}
			next++
			i++
		case '%':
			b.WriteByte('%')
			i++
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// JoinNames joins object names the way violation messages show them:
// comma separated, declaration order kept, repeats dropped. Empty names
// render as MissingName.
func JoinNames(names []string) string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			name = MissingName
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return strings.Join(out, ",")
}
