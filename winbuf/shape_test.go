package winbuf

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestShapeSentOnChange(t *testing.T) {
	m, d := newShmManager()
	b := m.Buffer(&fakeWindow{h: 8, size: image.Pt(10, 4)})

	// Without alpha there is no shape.
	b.MarkDirty(b.Bounds())
	_ = b.Flush()
	m.Complete(b.Token())
	if len(d.shapes[8]) != 0 {
		t.Fatalf("shape sent for a buffer without alpha")
	}

	b.NeedsAlpha()
	flush := func() {
		b.MarkDirty(b.Bounds())
		_ = b.Flush()
		m.Complete(b.Token())
	}
	flush()
	flush()
	want := [][]image.Rectangle{{image.Rect(0, 0, 10, 4)}}
	if diff := cmp.Diff(want, d.shapes[8]); diff != "" {
		t.Fatalf("shapes (-want +got):\n%s", diff)
	}

	// Punch a transparent column into the middle rows.
	v := b.View()
	for y := 1; y < 3; y++ {
		v.Set(4, y, color.RGBA{})
	}
	flush()
	want = append(want, []image.Rectangle{
		image.Rect(0, 0, 10, 1),
		image.Rect(0, 1, 4, 3),
		image.Rect(5, 1, 10, 3),
		image.Rect(0, 3, 10, 4),
	})
	if diff := cmp.Diff(want, d.shapes[8]); diff != "" {
		t.Errorf("shapes (-want +got):\n%s", diff)
	}
}

func TestShapeRects(t *testing.T) {
	tests := []struct {
		name  string
		size  image.Point
		alpha []byte
		want  []image.Rectangle
	}{
		{"empty", image.Pt(3, 2), []byte{0, 0, 0, 0, 0, 0}, nil},
		{"full", image.Pt(3, 2), []byte{1, 1, 1, 9, 9, 9}, []image.Rectangle{image.Rect(0, 0, 3, 2)}},
		{"diagonal", image.Pt(2, 2), []byte{1, 0, 0, 1}, []image.Rectangle{
			image.Rect(0, 0, 1, 1), image.Rect(1, 1, 2, 2),
		}},
		{"wide", image.Pt(12, 1), []byte{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0}, []image.Rectangle{
			image.Rect(1, 0, 11, 1),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bits := shapeBits(tt.alpha, tt.size.X, 1, tt.size)
			got := shapeRects(bits, tt.size)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("shapeRects (-want +got):\n%s", diff)
			}
		})
	}
}
