package dto

import (
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/schema"
)

var formTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.ZeroEmpty(true)
	d.RegisterConverter(time.Time{}, func(value string) reflect.Value {
		t, err := ParseFormTime(value)
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(t)
	})
	return d
}

// ParseFormTime nhận RFC3339 hoặc các dạng ngày giờ rút gọn
func ParseFormTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range formTimeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// DecodeReservationForm chuẩn hóa form multipart/urlencoded dạng guests[0][first_name]
// về CreateReservationRequest
func DecodeReservationForm(values url.Values) (*CreateReservationRequest, error) {
	var req CreateReservationRequest
	if err := formDecoder.Decode(&req, NormalizeFormKeys(values)); err != nil {
		return nil, err
	}
	return &req, nil
}

type indexedValues struct {
	index  int
	values []string
}

// NormalizeFormKeys đổi khóa kiểu ngoặc vuông sang dạng chấm của gorilla/schema:
//
//	guests[0][first_name] -> guests.0.first_name
//	package_ids[1]        -> package_ids (giữ thứ tự theo chỉ số)
//	package_ids[]         -> package_ids
func NormalizeFormKeys(values url.Values) url.Values {
	grouped := map[string][]indexedValues{}
	for key, vals := range values {
		target, index := normalizeKey(key)
		grouped[target] = append(grouped[target], indexedValues{index: index, values: vals})
	}

	out := make(url.Values, len(grouped))
	for target, groups := range grouped {
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].index < groups[j].index })
		for _, g := range groups {
			out[target] = append(out[target], g.values...)
		}
	}
	return out
}

func normalizeKey(key string) (string, int) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return key, -1
	}

	parts := []string{key[:open]}
	rest := key[open:]
	for len(rest) > 0 && rest[0] == '[' {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		parts = append(parts, rest[1:end])
		rest = rest[end+1:]
	}

	// Chỉ số cuối cùng (hoặc []) thuộc về slice kiểu cơ bản
	index := -1
	last := parts[len(parts)-1]
	if len(parts) > 1 && (last == "" || isIndex(last)) {
		if last != "" {
			index, _ = strconv.Atoi(last)
		}
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, "."), index
}

func isIndex(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
