package buildargs

import "slices"

// HiddenValue is displayed in place of secret flag values
const HiddenValue = "*HIDDEN*"

// SecretFlags are never printed in plaintext. The keystore name is not a secret.
var SecretFlags = []string{
	FlagKeystorePass,
	FlagKeyaliasName,
	FlagKeyaliasPass,
}

// IsSecret reports whether the flag value must be redacted in output
func IsSecret(name string) bool {
	return slices.Contains(SecretFlags, name)
}

// DisplayValue returns the value as it should appear in diagnostic output:
// quoted for regular flags, HiddenValue for secrets.
func DisplayValue(name, value string) string {
	if IsSecret(name) {
		return HiddenValue
	}
	return `"` + value + `"`
}
