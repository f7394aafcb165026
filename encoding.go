package objectid

import (
	"encoding/hex"
	"errors"
	"fmt"
	"unicode/utf8"
)

// DefaultAlphabet 為 slim 編碼的預設 64 字元字母表
const DefaultAlphabet = "-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

const (
	alphabetSize = 64
	hexLen       = Size * 2
	slimLen      = (Size*8 + 5) / 6
)

var (
	ErrInvalidAlphabet = errors.New("objectid: alphabet must be 64 characters long")
	ErrInvalidHex      = errors.New("objectid: invalid hex id")
	ErrInvalidSlim     = errors.New("objectid: invalid slim id")
)

var defaultTable = []rune(DefaultAlphabet)

// ToHex 將每個 byte 轉成兩位補零的小寫 hex
func ToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// ToSlim 將 b 視為 Big‑Endian 整數，以 6 bits 為一個字元重新編碼。
// alphabet 為空時使用 DefaultAlphabet，否則必須剛好 64 個字元。
func ToSlim(b []byte, alphabet string) (string, error) {
	table, err := alphabetTable(alphabet)
	if err != nil {
		return "", err
	}
	return encodeSlim(b, table), nil
}

func alphabetTable(alphabet string) ([]rune, error) {
	if alphabet == "" {
		return defaultTable, nil
	}
	if n := utf8.RuneCountInString(alphabet); n != alphabetSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAlphabet, n)
	}
	return []rune(alphabet), nil
}

// encodeSlim 從最後一個 byte 開始，低位往高位累積 bits，
// 每次取低 6 bits 當作一個字元並放到結果最前面，直到 byte 與暫存 bits 都用完。
func encodeSlim(b []byte, table []rune) string {
	out := make([]rune, (len(b)*8+5)/6)
	pos := len(out)

	var acc uint32
	bits := 0
	i := len(b) - 1
	for i >= 0 || bits > 0 {
		if bits < 6 && i >= 0 {
			acc |= uint32(b[i]) << bits
			bits += 8
			i--
		}
		pos--
		out[pos] = table[acc&0x3f]
		acc >>= 6
		bits -= 6
	}
	return string(out[pos:])
}

// ------------- 解析 ------------- //

// ParseHex 解析 24 字元 hex 字串 (大小寫皆可)
func ParseHex(s string) (ID, error) {
	var id ID
	if len(s) != hexLen {
		return id, fmt.Errorf("%w: length %d", ErrInvalidHex, len(s))
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return ID{}, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return id, nil
}

// ParseSlim 為 ToSlim 的反向操作，字母表必須 64 個字元且不可重複
func ParseSlim(s, alphabet string) (ID, error) {
	table, err := alphabetTable(alphabet)
	if err != nil {
		return ID{}, err
	}
	index := make(map[rune]uint32, alphabetSize)
	for i, r := range table {
		if _, dup := index[r]; dup {
			return ID{}, fmt.Errorf("%w: duplicate character %q", ErrInvalidAlphabet, r)
		}
		index[r] = uint32(i)
	}

	symbols := []rune(s)
	if len(symbols) != slimLen {
		return ID{}, fmt.Errorf("%w: length %d", ErrInvalidSlim, len(symbols))
	}

	// 16 個字元剛好 96 bits，由尾端往前每湊滿 8 bits 寫一個 byte
	var id ID
	var acc uint32
	bits := 0
	j := Size - 1
	for k := len(symbols) - 1; k >= 0; k-- {
		v, ok := index[symbols[k]]
		if !ok {
			return ID{}, fmt.Errorf("%w: unexpected character %q", ErrInvalidSlim, symbols[k])
		}
		acc |= v << bits
		bits += 6
		for bits >= 8 {
			id[j] = byte(acc)
			j--
			acc >>= 8
			bits -= 8
		}
	}
	return id, nil
}

// Parse 依長度判斷格式：24 為 hex，16 為預設字母表的 slim
func Parse(s string) (ID, error) {
	switch utf8.RuneCountInString(s) {
	case hexLen:
		return ParseHex(s)
	case slimLen:
		return ParseSlim(s, "")
	default:
		return ID{}, fmt.Errorf("objectid: unsupported id string length %d", len(s))
	}
}
