package token

// keywords is built from the spellings in kindNames, so the two never
// disagree. Case matters: "Self" and "self" are different keywords.
var keywords = func() map[string]Kind {
	m := make(map[string]Kind, KwExtern-KwUse+1)
	for k := KwUse; k <= KwExtern; k++ {
		m[kindNames[k]] = k
	}
	return m
}()

// LookupKeyword reports the keyword kind spelled ident.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
