package wordstat

// CheckStatus inspects a decoded response envelope for an error_code.
// A missing error_code is the normal success signal. It must run before
// any decoder reads the data field.
func CheckStatus(envelope any) error {
	val, ok := lookup(envelope, "error_code")
	if !ok {
		return nil
	}
	code, ok := asInt64(val)
	if !ok {
		return malformed("error code is not an integer")
	}
	return MapServiceErrorCode(code)
}
