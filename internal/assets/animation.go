package assets

import (
	"strings"
)

// Animation is an ordered list of frames played at Interval milliseconds.
// An Interval of zero or less means the interval is owned elsewhere (for
// example by a sibling block input).
type Animation struct {
	Frames   []*Bitmap
	Interval int
}

var _ Payload = (*Animation)(nil)

// NewAnimation returns a single blank frame animation.
func NewAnimation(width, height int) *Animation {
	return &Animation{Frames: []*Bitmap{NewBitmap(width, height)}}
}

func (a *Animation) Kind() Type { return TypeAnimation }

func (a *Animation) Clone() Payload {
	if a == nil {
		return (*Animation)(nil)
	}
	frames := make([]*Bitmap, len(a.Frames))
	for i, frame := range a.Frames {
		frames[i] = frame.CloneBitmap()
	}
	return &Animation{Frames: frames, Interval: a.Interval}
}

func (a *Animation) Equal(other Payload) bool {
	o, ok := other.(*Animation)
	if !ok || a == nil || o == nil {
		return ok && a == o
	}
	if a.Interval != o.Interval || len(a.Frames) != len(o.Frames) {
		return false
	}
	for i := range a.Frames {
		if !a.Frames[i].Equal(o.Frames[i]) {
			return false
		}
	}
	return true
}

// HasInterval reports whether the animation carries its own interval.
func (a *Animation) HasInterval() bool {
	return a != nil && a.Interval > 0
}

// EncodeFrameArray renders the frames as "[img`...`,img`...`]".
func EncodeFrameArray(a *Animation) string {
	if a == nil || len(a.Frames) == 0 {
		return "[]"
	}
	parts := make([]string, len(a.Frames))
	for i, frame := range a.Frames {
		parts[i] = EncodeImageLiteral(frame)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// DecodeFrameArray parses a frame array literal. At least one frame is
// required and every frame must share the first frame's size.
func DecodeFrameArray(text string) (*Animation, error) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return nil, ErrInvalidLiteral
	}
	rest := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	anim := &Animation{}
	for rest != "" {
		if !strings.HasPrefix(rest, "img`") {
			return nil, ErrInvalidLiteral
		}
		end := strings.Index(rest[len("img`"):], "`")
		if end < 0 {
			return nil, ErrInvalidLiteral
		}
		end += len("img`") + 1
		frame, err := DecodeImageLiteral(rest[:end])
		if err != nil {
			return nil, err
		}
		if len(anim.Frames) > 0 && (frame.Width != anim.Frames[0].Width || frame.Height != anim.Frames[0].Height) {
			return nil, ErrInvalidLiteral
		}
		anim.Frames = append(anim.Frames, frame)

		rest = strings.TrimSpace(rest[end:])
		if strings.HasPrefix(rest, ",") {
			rest = strings.TrimSpace(rest[1:])
			if rest == "" {
				return nil, ErrInvalidLiteral
			}
		} else if rest != "" {
			return nil, ErrInvalidLiteral
		}
	}
	if len(anim.Frames) == 0 {
		return nil, ErrInvalidLiteral
	}
	return anim, nil
}
