package types

import (
	"sync"
	"testing"
)

// 16 bytes, the XTEA key length the store config carries as uid_key.
var testUidKey = []byte{0x32, 0xa1, 0x8f, 0x04, 0xce, 0x6b, 0x17, 0x50,
	0x9d, 0x22, 0xe8, 0x3c, 0x41, 0x76, 0x0b, 0xaf}

func newTestGenerator(t *testing.T) *UidGenerator {
	t.Helper()
	var ug UidGenerator
	if err := ug.Init(1, testUidKey); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return &ug
}

func TestUidGeneratorInit(t *testing.T) {
	cases := []struct {
		name string
		key  []byte
		ok   bool
	}{
		{"valid key", testUidKey, true},
		{"nil key", nil, false},
		{"short key", testUidKey[:8], false},
		{"long key", append(append([]byte{}, testUidKey...), 0x01), false},
	}
	for _, tc := range cases {
		var ug UidGenerator
		err := ug.Init(1, tc.key)
		if tc.ok && err != nil {
			t.Errorf("%s: Init failed: %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("%s: Init expected to fail.", tc.name)
		}
	}
}

func TestUidGeneratorGet(t *testing.T) {
	ug := newTestGenerator(t)

	seen := make(map[Uid]bool)
	for i := 0; i < 1000; i++ {
		uid := ug.Get()
		if uid.IsZero() {
			t.Fatal("Get returned a zero uid")
		}
		if seen[uid] {
			t.Fatalf("Get returned a duplicate uid after %d calls", i)
		}
		seen[uid] = true
	}
}

func TestUidGeneratorGetStr(t *testing.T) {
	ug := newTestGenerator(t)

	str := ug.GetStr()
	if len(str) != uidBase64Unpadded {
		t.Errorf("GetStr length: expected %d, got %d (%q)", uidBase64Unpadded, len(str), str)
	}
	if uid := ParseUid(str); uid.IsZero() {
		t.Errorf("GetStr result %q does not parse back to a uid", str)
	}
}

func TestUidGeneratorDecodeEncode(t *testing.T) {
	ug := newTestGenerator(t)

	for i := 0; i < 100; i++ {
		uid := ug.Get()
		decoded := ug.DecodeUid(uid)
		if decoded < 0 {
			// Snowflake keeps the top bit unset so the decrypted value must
			// fit a signed BIGINT column.
			t.Fatalf("DecodeUid(%s) produced a negative value %d", uid.String(), decoded)
		}
		if back := ug.EncodeInt64(decoded); back != uid {
			t.Fatalf("EncodeInt64(DecodeUid(%s)) round trip: got %s", uid.String(), back.String())
		}
	}
}

func TestUidGeneratorConcurrent(t *testing.T) {
	ug := newTestGenerator(t)

	const workers = 8
	const perWorker = 200

	var mu sync.Mutex
	seen := make(map[Uid]bool)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			local := make([]Uid, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, ug.Get())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, uid := range local {
				if seen[uid] {
					t.Error("duplicate uid across goroutines")
					return
				}
				seen[uid] = true
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Errorf("Unique uids: expected %d, got %d", workers*perWorker, len(seen))
	}
}

func BenchmarkUidGeneratorGet(b *testing.B) {
	var ug UidGenerator
	if err := ug.Init(1, testUidKey); err != nil {
		b.Fatalf("Init failed: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ug.Get()
	}
}
