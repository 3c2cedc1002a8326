package wordstat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// ParseJSON decodes a response body into a generic tree of
// map[string]any, []any, string, bool, nil and json.Number values.
// Numbers stay as json.Number so integer checks do not go through float64.
//
// CheckStatus and the Decode functions also accept trees produced by plain
// json.Unmarshal; there a float64 counts as an integer only when it is
// integral and within ±2^53.
func ParseJSON(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, malformed("empty response body")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &Error{Kind: KindMalformedResponse, Reason: "failed to read JSON response", Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformed("unexpected data after JSON response")
	}
	return v, nil
}

func lookup(v any, key string) (any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	val, ok := obj[key]
	return val, ok
}

// maxExactFloat is the largest magnitude below which every integer has an
// exact float64 representation
const maxExactFloat = 1 << 53

// asInt64 accepts only values that are exact integers within int64 range.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		// trees built by plain json.Unmarshal hold every number as float64
		if n != math.Trunc(n) || math.Abs(n) > maxExactFloat {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

func requireField(v any, key string) (any, error) {
	val, ok := lookup(v, key)
	if !ok {
		return nil, malformed(fmt.Sprintf("no %s field", key))
	}
	return val, nil
}

func requireString(v any, key string) (string, error) {
	val, err := requireField(v, key)
	if err != nil {
		return "", err
	}
	s, ok := val.(string)
	if !ok {
		return "", malformed(fmt.Sprintf("%s field is not a string", key))
	}
	return s, nil
}

func requireInt64(v any, key string) (int64, error) {
	val, err := requireField(v, key)
	if err != nil {
		return 0, err
	}
	i, ok := asInt64(val)
	if !ok {
		return 0, malformed(fmt.Sprintf("%s field is not an integer", key))
	}
	return i, nil
}

func requireArray(v any, key string) ([]any, error) {
	val, err := requireField(v, key)
	if err != nil {
		return nil, err
	}
	arr, ok := val.([]any)
	if !ok {
		return nil, malformed(fmt.Sprintf("%s field is not an array", key))
	}
	return arr, nil
}

// decodeList maps fn over every element and stops at the first failure.
func decodeList[T any](items []any, fn func(any) (T, error)) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		v, err := fn(item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// dataArray extracts the "data" array every list response is wrapped in.
func dataArray(envelope any) ([]any, error) {
	return requireArray(envelope, "data")
}
