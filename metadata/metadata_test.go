// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package metadata

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

var fixedClock = func() time.Time { return time.UnixMilli(1700000000123) }

func testDeriver(n Network) Deriver {
	return Deriver{
		Config: Config{
			Network:     n,
			NamePrefix:  "Your Collection",
			Description: "desc",
			BaseURI:     "ipfs://CID",
			ImageFormat: "png",
			Extra:       Fields{{Key: "artist", Value: "me"}},
			Solana: SolanaConfig{
				Symbol:               "YC",
				SellerFeeBasisPoints: 1000,
				ExternalURL:          "https://example.com",
				Creators:             []Creator{{Address: "7fXNuer5", Share: 100}},
			},
		},
		Clock: fixedClock,
	}
}

var twoAttrs = []Attribute{{TraitType: "A", Value: "x"}, {TraitType: "B", Value: "p"}}

func TestFingerprint(t *testing.T) {
	if got, want := Fingerprint("abc"), "a9993e364706816aba3e25717850c26c9cd0d89d"; got != want {
		t.Errorf("Fingerprint(abc) = %s, want %s", got, want)
	}
}

func TestParseNetwork(t *testing.T) {
	for in, want := range map[string]Network{"": Ethereum, "eth": Ethereum, "sol": Solana} {
		if got, err := ParseNetwork(in); err != nil || got != want {
			t.Errorf("ParseNetwork(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := ParseNetwork("btc"); !errors.Is(err, ErrUnknownNetwork) {
		t.Errorf("ParseNetwork(btc) err = %v, want ErrUnknownNetwork", err)
	}
}

func TestDeriveEthereumShape(t *testing.T) {
	r := testDeriver(Ethereum).Derive("0:x.png-0:p.png", 7, twoAttrs)
	got, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name":"Your Collection #7","description":"desc","image":"ipfs://CID/7.png",` +
		`"dna":"` + Fingerprint("0:x.png-0:p.png") + `","edition":7,"date":1700000000123,"artist":"me",` +
		`"attributes":[{"trait_type":"A","value":"x"},{"trait_type":"B","value":"p"}],` +
		`"compiler":"HashLips Art Engine"}`
	if string(got) != want {
		t.Errorf("Marshal =\n%s\nwant\n%s", got, want)
	}
}

func TestDeriveSolanaShape(t *testing.T) {
	r := testDeriver(Solana).Derive("0:x.png-0:p.png", 0, twoAttrs)
	got, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name":"Your Collection #0","symbol":"YC","description":"desc",` +
		`"seller_fee_basis_points":1000,"image":"0.png","external_url":"https://example.com",` +
		`"edition":0,"dna":"` + Fingerprint("0:x.png-0:p.png") + `","date":1700000000123,"artist":"me",` +
		`"attributes":[{"trait_type":"A","value":"x"},{"trait_type":"B","value":"p"}],` +
		`"properties":{"files":[{"uri":"0.png","type":"image/png"}],"category":"image",` +
		`"creators":[{"address":"7fXNuer5","share":100}]},"compiler":"HashLips Art Engine"}`
	if string(got) != want {
		t.Errorf("Marshal =\n%s\nwant\n%s", got, want)
	}
	if strings.Contains(string(got), "ipfs://") {
		t.Error("Solana record carries the absolute image URI")
	}
	if diff := cmp.Diff(testDeriver(Solana).Config.Solana.Creators, r.Solana.Properties.Creators); diff != "" {
		t.Errorf("creators mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveDoesNotAliasInputs(t *testing.T) {
	d := testDeriver(Ethereum)
	attrs := []Attribute{{TraitType: "A", Value: "x"}}
	r := d.Derive("0:x.png", 1, attrs)
	attrs[0].Value = "changed"
	d.Config.Extra[0].Value = "changed"
	if r.Attributes[0].Value != "x" || r.Extra[0].Value != "me" {
		t.Errorf("record aliased caller slices: %+v", r)
	}
}

func TestExtraCannotShadowRecordFields(t *testing.T) {
	d := testDeriver(Ethereum)
	d.Config.Extra = Fields{{Key: "name", Value: "evil"}, {Key: "compiler", Value: "x"}}
	b, err := json.Marshal(d.Derive("0:x.png", 1, nil))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(b), `"name"`) != 1 || strings.Contains(string(b), "evil") {
		t.Errorf("extra field shadowed a record field: %s", b)
	}
	if !strings.Contains(string(b), `"attributes":[]`) {
		t.Errorf("nil attributes not written as []: %s", b)
	}
}

func TestRecordJSONRoundTrip(t *testing.T) {
	for _, n := range []Network{Ethereum, Solana} {
		t.Run(string(n), func(t *testing.T) {
			want := testDeriver(n).Derive("0:x.png-1:q.png", 3, twoAttrs)
			b, err := json.MarshalIndent(want, "", "  ")
			if err != nil {
				t.Fatal(err)
			}
			var got Record
			if err := json.Unmarshal(b, &got); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnmarshalKeepsUnknownKeysInOrder(t *testing.T) {
	var r Record
	in := `{"name":"n","zeta":1,"alpha":{"k":"v"},"edition":2,"attributes":[]}`
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatal(err)
	}
	if len(r.Extra) != 2 || r.Extra[0].Key != "zeta" || r.Extra[1].Key != "alpha" {
		t.Errorf("Extra = %+v, want zeta then alpha", r.Extra)
	}
	if r.Network != Ethereum || r.Edition != 2 {
		t.Errorf("record = %+v", r)
	}
	if err := json.Unmarshal([]byte(`[1]`), &r); !errors.Is(err, ErrNotObject) {
		t.Errorf("Unmarshal(array) err = %v, want ErrNotObject", err)
	}
}

func TestFieldsYAMLOrder(t *testing.T) {
	var f Fields
	src := "zeta: 1\nalpha: two\nmid: [1, 2]\n"
	if err := yaml.Unmarshal([]byte(src), &f); err != nil {
		t.Fatal(err)
	}
	keys := make([]string, len(f))
	for i, kv := range f {
		keys[i] = kv.Key
	}
	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, keys); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}
	out, err := yaml.Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(out), "zeta: 1\nalpha: two\n") {
		t.Errorf("MarshalYAML = %q", out)
	}
	if err := yaml.Unmarshal([]byte("- a\n- b\n"), &f); err == nil {
		t.Error("Unmarshal of a sequence succeeded")
	}
}

func TestPatch(t *testing.T) {
	old := testDeriver(Ethereum)
	recs := []Record{old.Derive("0:x.png", 1, nil), old.Derive("1:y.png", 2, nil)}

	next := testDeriver(Ethereum)
	next.Config.NamePrefix = "Renamed"
	next.Config.Description = "new"
	next.Config.BaseURI = "ipfs://NEW"
	Patch(recs, next)
	if recs[1].Name != "Renamed #2" || recs[1].Description != "new" || recs[1].Image != "ipfs://NEW/2.png" {
		t.Errorf("patched eth record = %+v", recs[1])
	}

	sol := testDeriver(Solana)
	srecs := []Record{sol.Derive("0:x.png", 0, nil)}
	sol.Config.Solana.Creators = []Creator{{Address: "other", Share: 50}, {Address: "me", Share: 50}}
	Patch(srecs, sol)
	if got := srecs[0].Solana.Properties.Creators; len(got) != 2 || got[0].Address != "other" {
		t.Errorf("patched creators = %+v", got)
	}
	if srecs[0].Image != "0.png" {
		t.Errorf("patched sol image = %q, want unchanged", srecs[0].Image)
	}
}

func TestMimeType(t *testing.T) {
	tests := map[string]string{"png": "image/png", "jpeg": "image/jpeg", "jpg": "image/jpeg", "webp": "image/webp"}
	for in, want := range tests {
		if got := MimeType(in); got != want {
			t.Errorf("MimeType(%q) = %q, want %q", in, got, want)
		}
	}
}
