package ballot

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	perr "ballotbox/internal/platform/errors"
)

// stubTS echoes the raw cell so row tests do not depend on date parsing
type stubTS struct{}

func (stubTS) Normalize(c Cell) string {
	if c.IsEmpty() {
		return "-"
	}
	return c.String()
}

func row(ts, nama, unit, suara string) RawRow {
	return RawRow{
		ColTimestamp: Text(ts),
		ColNama:      Text(nama),
		ColUnit:      Text(unit),
		ColSuara:     Text(suara),
	}
}

func TestNormalizeRow_Table(t *testing.T) {
	tests := []struct {
		name    string
		in      RawRow
		want    VoterRecord
		wantErr bool
	}{
		{
			name: "multi candidate split and trimmed",
			in:   row("t", "  John Doe ", " IT", "Kandidat 1, Kandidat 2"),
			want: VoterRecord{Timestamp: "t", Nama: "John Doe", Unit: "IT", Suara: []string{"Kandidat 1", "Kandidat 2"}},
		},
		{
			name: "single candidate",
			in:   row("t", "Jane", "HR", "Kandidat 3"),
			want: VoterRecord{Timestamp: "t", Nama: "Jane", Unit: "HR", Suara: []string{"Kandidat 3"}},
		},
		{
			name: "blank candidates dropped",
			in:   row("t", "Jane", "HR", "A,, B ,"),
			want: VoterRecord{Timestamp: "t", Nama: "Jane", Unit: "HR", Suara: []string{"A", "B"}},
		},
		{
			name: "numeric name rendered as text",
			in: RawRow{
				ColTimestamp: Number(45000),
				ColNama:      Number(1234),
				ColUnit:      Text("Ops"),
				ColSuara:     Text("A"),
			},
			want: VoterRecord{Timestamp: "45000", Nama: "1234", Unit: "Ops", Suara: []string{"A"}},
		},
		{
			name: "missing timestamp key still accepted",
			in:   RawRow{ColNama: Text("N"), ColUnit: Text("U"), ColSuara: Text("A")},
			want: VoterRecord{Timestamp: "-", Nama: "N", Unit: "U", Suara: []string{"A"}},
		},
		{
			name:    "empty name rejected",
			in:      row("t", "", "IT", "A"),
			wantErr: true,
		},
		{
			name:    "whitespace unit rejected",
			in:      row("t", "N", "   ", "A"),
			wantErr: true,
		},
		{
			name:    "only commas in vote cell rejected",
			in:      row("t", "N", "U", " , ,"),
			wantErr: true,
		},
		{
			name:    "missing suara key rejected",
			in:      RawRow{ColTimestamp: Text("t"), ColNama: Text("N"), ColUnit: Text("U")},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeRow(tc.in, stubTS{})
			if tc.wantErr {
				if !errors.Is(err, ErrRowRejected) {
					t.Fatalf("NormalizeRow err = %v, want ErrRowRejected", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeRow unexpected err: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("NormalizeRow = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestSplitVotes(t *testing.T) {
	cases := map[string][]string{
		"":                       nil,
		"   ":                    nil,
		"A":                      {"A"},
		"A,B":                    {"A", "B"},
		" Kandidat 1 ,Kandidat 2": {"Kandidat 1", "Kandidat 2"},
		",,":                     nil,
	}
	for in, want := range cases {
		if got := SplitVotes(in); !reflect.DeepEqual(got, want) {
			t.Fatalf("SplitVotes(%q) = %#v, want %#v", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		v := Validate(nil)
		if v.Valid || !v.Empty {
			t.Fatalf("Validate(nil) = %+v", v)
		}
		if !errors.Is(v.Err(), ErrInvalidStructure) {
			t.Fatalf("Err() = %v", v.Err())
		}
	})

	t.Run("missing unit on row one", func(t *testing.T) {
		tbl := RawTable{{ColTimestamp: Number(45000), ColNama: Text("John"), ColSuara: Text("A")}}
		v := Validate(tbl)
		if v.Valid {
			t.Fatalf("expected invalid")
		}
		if !reflect.DeepEqual(v.Missing, []string{ColUnit}) {
			t.Fatalf("Missing = %v", v.Missing)
		}
		err := v.Err()
		if !errors.Is(err, ErrInvalidStructure) || !strings.Contains(err.Error(), "Unit") {
			t.Fatalf("Err() = %v", err)
		}
		if perr.CodeOf(err) != perr.ErrorCodeValidation {
			t.Fatalf("code = %v", perr.CodeOf(err))
		}
	})

	t.Run("blank cells pass by key presence", func(t *testing.T) {
		tbl := RawTable{{ColTimestamp: {}, ColNama: {}, ColUnit: {}, ColSuara: {}}}
		if v := Validate(tbl); !v.Valid || v.Err() != nil {
			t.Fatalf("Validate = %+v", v)
		}
	})

	t.Run("only row one is inspected", func(t *testing.T) {
		tbl := RawTable{
			row("t", "N", "U", "A"),
			{ColNama: Text("no other keys")},
		}
		if v := Validate(tbl); !v.Valid {
			t.Fatalf("Validate = %+v", v)
		}
	})

	t.Run("header names are case sensitive", func(t *testing.T) {
		tbl := RawTable{{"timestamp": {}, "nama": {}, "unit": {}, "suara": {}}}
		v := Validate(tbl)
		if v.Valid || len(v.Missing) != 4 {
			t.Fatalf("Validate = %+v", v)
		}
	})
}

func TestCellJSON(t *testing.T) {
	var tbl RawTable
	body := `[{"Timestamp":45000,"Nama":"John","Unit":null,"Suara":true}]`
	if err := json.Unmarshal([]byte(body), &tbl); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	r := tbl[0]
	if r[ColTimestamp].Kind != CellNumber || r[ColTimestamp].Num != 45000 {
		t.Fatalf("Timestamp = %+v", r[ColTimestamp])
	}
	if r[ColNama] != Text("John") {
		t.Fatalf("Nama = %+v", r[ColNama])
	}
	if c, ok := r[ColUnit]; !ok || !c.IsEmpty() {
		t.Fatalf("Unit should be present and empty, got %+v ok=%v", c, ok)
	}
	if r[ColSuara] != Text("true") {
		t.Fatalf("Suara = %+v", r[ColSuara])
	}

	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"Nama":"John","Suara":"true","Timestamp":45000,"Unit":null}`
	if string(out) != want {
		t.Fatalf("marshal = %s, want %s", out, want)
	}
}

func TestCellString(t *testing.T) {
	if got := Number(45000.5).String(); got != "45000.5" {
		t.Fatalf("Number.String = %q", got)
	}
	if got := (Cell{}).String(); got != "" {
		t.Fatalf("Empty.String = %q", got)
	}
}
