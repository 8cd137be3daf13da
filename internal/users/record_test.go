package users

import (
	"encoding/json"
	"testing"
)

const sampleUser = `{"id":1,"name":"Leanne Graham","username":"Bret","email":"Sincere@april.biz",` +
	`"address":{"street":"Kulas Light","geo":{"lat":"-37.3159","lng":"81.1496"}},` +
	`"phone":"1-770-736-8031","tags":["a",2],"active":true,"manager":null}`

func TestRecord_DecodeKeepsOrderAndNesting(t *testing.T) {
	var rec Record
	if err := json.Unmarshal([]byte(sampleUser), &rec); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	want := []string{"id", "name", "username", "email", "address", "phone", "tags", "active", "manager"}
	got := rec.Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	addr, _ := rec.Get("address")
	nested, ok := addr.(*Record)
	if !ok {
		t.Fatalf("address = %T, want *Record", addr)
	}
	geo, _ := nested.Get("geo")
	if g, ok := geo.(*Record); !ok || g.Text("lat") != "-37.3159" {
		t.Fatalf("address.geo = %#v, want nested record with lat", geo)
	}

	if id, ok := rec.ID(); !ok || id != 1 {
		t.Fatalf("ID() = %d, %v, want 1, true", id, ok)
	}
	if rec.Text("active") != "true" || rec.Text("manager") != "" {
		t.Fatalf("Text(active) = %q, Text(manager) = %q", rec.Text("active"), rec.Text("manager"))
	}
}

func TestRecord_EncodeRoundTripsExactly(t *testing.T) {
	var rec Record
	if err := json.Unmarshal([]byte(sampleUser), &rec); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	out, err := json.Marshal(&rec)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(out) != sampleUser {
		t.Fatalf("Marshal = %s\nwant %s", out, sampleUser)
	}
}

func TestRecord_SetAppendsNewKeysOnly(t *testing.T) {
	rec := NewRecord()
	rec.Set("a", "1")
	rec.Set("b", "2")
	rec.Set("a", "3")
	if got := rec.Keys(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("Keys = %v, want [a b]", got)
	}
	if rec.Text("a") != "3" {
		t.Fatalf("Text(a) = %q, want 3", rec.Text("a"))
	}
}

func TestRecord_ID(t *testing.T) {
	cases := []struct {
		name   string
		value  any
		want   int64
		wantOK bool
	}{
		{"number", json.Number("7"), 7, true},
		{"fractional", json.Number("7.5"), 0, false},
		{"float", float64(3), 3, true},
		{"string", "12", 12, true},
		{"garbage", "x", 0, false},
		{"missing", nil, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := NewRecord()
			if tc.value != nil {
				rec.Set("id", tc.value)
			}
			got, ok := rec.ID()
			if got != tc.want || ok != tc.wantOK {
				t.Fatalf("ID() = %d, %v, want %d, %v", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestRecord_UnmarshalRejectsNonObject(t *testing.T) {
	var rec Record
	if err := json.Unmarshal([]byte(`[1,2]`), &rec); err == nil {
		t.Fatalf("Unmarshal of array returned nil error, want error")
	}
}
