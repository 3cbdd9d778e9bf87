package cmd

import (
	"testing"

	"github.com/BardoBard/Bardrix-sub000/types"
)

func TestParseVec3(t *testing.T) {
	type spec struct {
		in     string
		exp    types.Vec3
		expErr bool
	}
	specs := []spec{
		{"0,0,-1", types.Vec3{0, 0, -1}, false},
		{" 1.5, 2 ,3 ", types.Vec3{1.5, 2, 3}, false},
		{"1,2", types.Vec3{}, true},
		{"1,2,z", types.Vec3{}, true},
	}

	for index, s := range specs {
		v, err := parseVec3(s.in)
		if s.expErr {
			if err == nil {
				t.Fatalf("[spec %d] expected an error", index)
			}
			continue
		}
		if err != nil {
			t.Fatalf("[spec %d] %v", index, err)
		}
		if v != s.exp {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, v)
		}
	}
}
