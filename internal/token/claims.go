package token

import "github.com/golang-jwt/jwt/v5"

// Claim keys vary by issuer: plain JWT names, the .NET ClaimTypes URIs and
// Keycloak's realm_access block all show up in the wild.
const (
	dotNetNameID = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"
	dotNetEmail  = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"
	dotNetGiven  = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/givenname"
	dotNetFamily = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/surname"
	dotNetRole   = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
)

func Subject(claims jwt.MapClaims) string {
	return stringClaim(claims, "sub", "nameid", dotNetNameID, "userId", "uid")
}

func Email(claims jwt.MapClaims) string {
	return stringClaim(claims, "email", dotNetEmail, "upn")
}

func GivenName(claims jwt.MapClaims) string {
	return stringClaim(claims, "given_name", "firstName", dotNetGiven)
}

func FamilyName(claims jwt.MapClaims) string {
	return stringClaim(claims, "family_name", "lastName", dotNetFamily)
}

// Roles collects the role claim under its known keys. The value may be a
// single string or an array of strings.
func Roles(claims jwt.MapClaims) []string {
	for _, key := range []string{"role", "roles", dotNetRole} {
		if out := asStrings(claims[key]); len(out) > 0 {
			return out
		}
	}
	if realm, ok := claims["realm_access"].(map[string]any); ok {
		if out := asStrings(realm["roles"]); len(out) > 0 {
			return out
		}
	}
	return nil
}

// HasIdentity reports whether the claims carry enough to build a user
// without a profile round-trip.
func HasIdentity(claims jwt.MapClaims) bool {
	return Email(claims) != "" || GivenName(claims) != "" || FamilyName(claims) != ""
}

func stringClaim(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func asStrings(v any) []string {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		var out []string
		for _, e := range t {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
