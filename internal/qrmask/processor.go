package qrmask

import (
	"image"
)

// Processor runs the decode → detect → mask → encode pipeline for one image.
// It holds no mutable state and is safe for concurrent use when its Detector is.
type Processor struct {
	detector Detector
}

// NewProcessor returns a Processor using the given detector.
func NewProcessor(d Detector) *Processor {
	if d == nil {
		d = Unavailable{}
	}
	return &Processor{detector: d}
}

// NewDefaultProcessor returns a Processor using the decoding-then-geometric cascade.
func NewDefaultProcessor() *Processor {
	return NewProcessor(NewCascade())
}

// Process masks every QR code found in data and returns the encoded result along
// with the number of regions detected. Zero regions is a successful outcome: the
// original is re-encoded in the requested format without masking. Failures are
// returned as *ProcessingError.
func (p *Processor) Process(data []byte, filename string, opts Options) ([]byte, int, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, 0, &ProcessingError{Filename: filename, Err: err}
	}

	regions, err := p.detector.Detect(img)
	if err != nil {
		return nil, 0, &ProcessingError{Filename: filename, Err: err}
	}

	var out image.Image = img
	if len(regions) > 0 {
		out, err = Mask(img, regions, opts)
		if err != nil {
			return nil, 0, &ProcessingError{Filename: filename, Err: err}
		}
	}

	encoded, err := Encode(out, opts.Format())
	if err != nil {
		return nil, 0, &ProcessingError{Filename: filename, Err: err}
	}
	return encoded, len(regions), nil
}
