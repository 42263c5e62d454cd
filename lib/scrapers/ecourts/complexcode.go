package ecourts

import "strings"

// ComplexCode is the parsed form of the composite court complex code
// the portal hands out: `id[@estCode1,estCode2,...][@flag]`. The
// establishment codes enumerate the judicial establishments hosted in
// the complex; a flag of "Y" means downstream requests must derive an
// establishment code from the selected court.
type ComplexCode struct {
	ID       string
	EstCodes []string
	Flag     string
}

// ParseComplexCode splits a composite complex code once at the
// boundary so the delimiter format never leaks deeper into the
// call chain.
func ParseComplexCode(code string) ComplexCode {
	parts := strings.Split(code, "@")

	out := ComplexCode{ID: parts[0]}
	if len(parts) > 1 {
		for _, est := range strings.Split(parts[1], ",") {
			est = strings.TrimSpace(est)
			if est != "" {
				out.EstCodes = append(out.EstCodes, est)
			}
		}
	}
	if len(parts) > 2 {
		out.Flag = strings.TrimSpace(parts[2])
	}
	return out
}
