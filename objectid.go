// Package objectid 提供 12 byte、與 MongoDB ObjectId 相容的 ID 產生器與編碼
//
// 結構 (Big‑Endian)：
//
//	┌──────────────┬──────────────┬──────────────┬──────────────┐
//	│   32 bits    │   24 bits    │   16 bits    │   24 bits    │
//	│ Timestamp(s) │  MachineID   │  ProcessID   │   Counter    │
//	└──────────────┴──────────────┴──────────────┴──────────────┘
//
// 特性：
//   - 無需伺服器：Machine 與 Counter 種子於產生器建立時以 crypto/rand 取得
//   - ProcessID 每次產生都重新隨機 (沒有可用的 OS pid 時的替代做法)
//   - Counter 以 atomic 遞增，模 2^24 回捲，同一秒內不重複
//   - 兩種字串表示：24 字元小寫 hex、16 字元 slim (64 字元字母表，每字 6 bits)
//
// 非目標：不保證無法猜測，也不做跨機器協調，唯一性僅依賴隨機 MachineID 的統計獨立。
package objectid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// ------------- 常量設定 ------------- //

const (
	// Size 為 raw ID 的 byte 長度
	Size = 12

	counterBits = 24
	counterMask = (1 << counterBits) - 1
)

// ------------- ID 型別定義 ------------- //

// ID 以 12 byte 陣列表現，欄位皆為 Big‑Endian
type ID [Size]byte

// Bytes 回傳 12 byte 的複本
func (id ID) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, id[:])
	return b
}

// Hex 回傳 24 字元小寫十六進位字串
func (id ID) Hex() string {
	return ToHex(id[:])
}

// Slim 回傳 slim 字串，alphabet 為空時使用 DefaultAlphabet
func (id ID) Slim(alphabet string) (string, error) {
	return ToSlim(id[:], alphabet)
}

// String 預設用 Hex 表示 (Implement fmt.Stringer)
func (id ID) String() string { return id.Hex() }

// IsZero 判斷是否為全零 ID
func (id ID) IsZero() bool { return id == ID{} }

// Timestamp 回傳嵌入的秒級時間 (UTC)
func (id ID) Timestamp() time.Time {
	return time.Unix(int64(binary.BigEndian.Uint32(id[0:4])), 0).UTC()
}

// Machine 回傳 24 bit 機器指紋
func (id ID) Machine() uint32 {
	return uint32(id[4])<<16 | uint32(id[5])<<8 | uint32(id[6])
}

// Process 回傳 16 bit 行程指紋
func (id ID) Process() uint16 {
	return binary.BigEndian.Uint16(id[7:9])
}

// Counter 回傳 24 bit 計數器
func (id ID) Counter() uint32 {
	return uint32(id[9])<<16 | uint32(id[10])<<8 | uint32(id[11])
}

// Decode 欄位
func (id ID) Decode() (seconds uint32, machine uint32, process uint16, counter uint32) {
	return binary.BigEndian.Uint32(id[0:4]), id.Machine(), id.Process(), id.Counter()
}

// MarshalText 以 hex 輸出，讓 ID 可直接放進 JSON
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.Hex()), nil
}

// UnmarshalText 解析 hex 字串
func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := ParseHex(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ------------- 產生器實作 ------------- //

// Generator 持有 MachineID 與 Counter，可安全地被多個 goroutine 共用
type Generator struct {
	machine [3]byte       // 建立後不再改變
	counter atomic.Uint32 // 只取低 24 bits

	mu   sync.Mutex // 保護 rand 的讀取，注入的 io.Reader 不一定 goroutine-safe
	rand io.Reader
	now  func() time.Time
}

// Option 設定 Generator
type Option func(*Generator)

// WithRandom 指定隨機來源，預設為 crypto/rand.Reader
func WithRandom(r io.Reader) Option {
	return func(g *Generator) { g.rand = r }
}

// WithClock 指定時鐘，預設為 time.Now
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// NewGenerator 建立新的 Generator，MachineID 與 Counter 種子各取 3 byte 隨機值
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{rand: rand.Reader, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}

	var seed [6]byte
	if _, err := io.ReadFull(g.rand, seed[:]); err != nil {
		return nil, fmt.Errorf("objectid: seed generator: %w", err)
	}
	copy(g.machine[:], seed[:3])
	g.counter.Store(uint32(seed[3])<<16 | uint32(seed[4])<<8 | uint32(seed[5]))
	return g, nil
}

// CreateOption 調整單次產生的參數
type CreateOption func(*createConfig)

type createConfig struct {
	seconds *float64
}

// WithTimestamp 指定 Unix 秒數，小數部分往零截斷，超出 32 bits 時靜默回捲
func WithTimestamp(seconds float64) CreateOption {
	return func(c *createConfig) { c.seconds = &seconds }
}

// WithTime 以 time.Time 指定時間 (精度為秒)
func WithTime(t time.Time) CreateOption {
	return WithTimestamp(float64(t.Unix()))
}

// New 產生下一個 ID (thread‑safe)
//
// 注入的隨機來源讀取失敗時會 panic，預設的 crypto/rand 不會失敗。
func (g *Generator) New(opts ...CreateOption) ID {
	var cfg createConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var secs uint32
	if cfg.seconds != nil {
		secs = wrapSeconds(*cfg.seconds)
	} else {
		secs = uint32(g.now().Unix())
	}

	var pid [2]byte
	g.mu.Lock()
	_, err := io.ReadFull(g.rand, pid[:])
	g.mu.Unlock()
	if err != nil {
		panic(fmt.Sprintf("objectid: read process fingerprint: %v", err))
	}

	inc := g.counter.Add(1) & counterMask

	// 組裝 ID (Big‑Endian)：
	var id ID
	binary.BigEndian.PutUint32(id[0:4], secs)
	copy(id[4:7], g.machine[:])
	copy(id[7:9], pid[:])
	id[9] = byte(inc >> 16)
	id[10] = byte(inc >> 8)
	id[11] = byte(inc)
	return id
}

// Hex 產生 ID 並回傳 hex 字串
func (g *Generator) Hex(opts ...CreateOption) string {
	return g.New(opts...).Hex()
}

// Slim 產生 ID 並回傳 slim 字串；字母表長度不對時不會消耗 Counter
func (g *Generator) Slim(alphabet string, opts ...CreateOption) (string, error) {
	table, err := alphabetTable(alphabet)
	if err != nil {
		return "", err
	}
	id := g.New(opts...)
	return encodeSlim(id[:], table), nil
}

// wrapSeconds 往零截斷後取模 2^32；NaN 與 ±Inf 視為 0
func wrapSeconds(seconds float64) uint32 {
	t := math.Trunc(seconds)
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	m := math.Mod(t, 1<<32)
	if m < 0 {
		m += 1 << 32
	}
	return uint32(m)
}

// ------------- 預設產生器 ------------- //

var std = mustGenerator()

func mustGenerator() *Generator {
	g, err := NewGenerator()
	if err != nil {
		panic(err)
	}
	return g
}

// New 以預設產生器產生 ID
func New(opts ...CreateOption) ID { return std.New(opts...) }

// Hex 以預設產生器產生 hex 字串，是本套件的預設入口
func Hex(opts ...CreateOption) string { return std.Hex(opts...) }

// Slim 以預設產生器產生 slim 字串
func Slim(alphabet string, opts ...CreateOption) (string, error) {
	return std.Slim(alphabet, opts...)
}
