package extract

// NormalizeNIP strips everything but digits from a candidate tax id and
// accepts it only if exactly ten digits remain, the length of a Polish NIP.
// "123-456-32-18" normalizes to "1234563218"; a nine-digit leftover is
// rejected, not padded.
func NormalizeNIP(raw string) (string, bool) {
	digits := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}
	if len(digits) != 10 {
		return "", false
	}
	return string(digits), true
}
