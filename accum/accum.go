// Package accum persists a photon.Accumulator's reduced results to and
// from disk with encoding/gob, the way digest2/digest2.go's readModel
// decodes a population-model binary: a fixed, ordered sequence of
// gob.Encode/Decode calls against plain struct fields, no schema
// negotiation.
package accum

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/soniakeys/dustrt/errs"
	"github.com/soniakeys/dustrt/photon"
)

// Snapshot is the on-disk representation of a photon.Accumulator: its
// shape plus the two flat result arrays, per section 6's outputs
// contract (per-cell absorbed luminosity indexed by cell/wavelength,
// per-observer image accumulators indexed by observer/wavelength/pixel).
type Snapshot struct {
	NCells, NLambda, NObservers, NPixels int
	Absorbed                             []float64
	Images                               []float64
}

// ToSnapshot captures a's current contents into a Snapshot.
func ToSnapshot(a *photon.Accumulator) Snapshot {
	absorbed := make([]float64, a.NCells*a.NLambda)
	for cell := 0; cell < a.NCells; cell++ {
		for lambda := 0; lambda < a.NLambda; lambda++ {
			absorbed[cell*a.NLambda+lambda] = a.Absorbed(cell, lambda)
		}
	}
	images := make([]float64, a.NObservers*a.NLambda*a.NPixels)
	for obs := 0; obs < a.NObservers; obs++ {
		for lambda := 0; lambda < a.NLambda; lambda++ {
			for pixel := 0; pixel < a.NPixels; pixel++ {
				images[(obs*a.NLambda+lambda)*a.NPixels+pixel] = a.Image(obs, lambda, pixel)
			}
		}
	}
	return Snapshot{
		NCells:     a.NCells,
		NLambda:    a.NLambda,
		NObservers: a.NObservers,
		NPixels:    a.NPixels,
		Absorbed:   absorbed,
		Images:     images,
	}
}

// Restore rebuilds a fresh photon.Accumulator from a Snapshot, repopulated
// cell by cell and pixel by pixel through the Accumulator's own
// accessors, matching the read-only-accumulator contract of section 6.
func Restore(s Snapshot) *photon.Accumulator {
	a := photon.NewAccumulator(s.NCells, s.NLambda, s.NObservers, s.NPixels)
	for cell := 0; cell < s.NCells; cell++ {
		for lambda := 0; lambda < s.NLambda; lambda++ {
			v := s.Absorbed[cell*s.NLambda+lambda]
			if v != 0 {
				a.AddAbsorption(cell, lambda, v)
			}
		}
	}
	for obs := 0; obs < s.NObservers; obs++ {
		for lambda := 0; lambda < s.NLambda; lambda++ {
			for pixel := 0; pixel < s.NPixels; pixel++ {
				v := s.Images[(obs*s.NLambda+lambda)*s.NPixels+pixel]
				if v != 0 {
					a.AddImage(obs, lambda, pixel, v)
				}
			}
		}
	}
	return a
}

// Write gob-encodes a's snapshot to w.
func Write(w io.Writer, a *photon.Accumulator) error {
	enc := gob.NewEncoder(w)
	if err := enc.Encode(ToSnapshot(a)); err != nil {
		return fmt.Errorf("%w: encoding accumulator snapshot: %v", errs.ErrResource, err)
	}
	return nil
}

// Read gob-decodes an accumulator snapshot from r.
func Read(r io.Reader) (*photon.Accumulator, error) {
	var s Snapshot
	dec := gob.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: decoding accumulator snapshot: %v", errs.ErrResource, err)
	}
	return Restore(s), nil
}
