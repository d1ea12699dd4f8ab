package id3v2

import "testing"

func newTestBuffer(n int) *TagData {
	v := Version{Major: Major3, Minor: 0}
	return &TagData{
		Version: v,
		tagEnd:  HeaderSize,
		Padding: Padding{Offset: HeaderSize, Size: int64(n)},
		decoder: NewDecoder(v.Major),
	}
}

func TestAllocateFrameSetsOffsets(t *testing.T) {
	tag := newTestBuffer(0)

	tag.allocateFrame("TIT2", []byte{1, 2, 3})
	tag.allocateFrame("TPE1", []byte{4, 5})

	f0 := tag.Frames[0]
	f1 := tag.Frames[1]

	if f0.Offset != HeaderSize+FrameHeaderSize {
		t.Errorf("frames[0].Offset = %d, want %d", f0.Offset, HeaderSize+FrameHeaderSize)
	}
	if f1.Offset != f0.Offset+int64(f0.Size)+FrameHeaderSize {
		t.Errorf("frames[1].Offset = %d, want %d", f1.Offset, f0.Offset+int64(f0.Size)+FrameHeaderSize)
	}
	if tag.Padding.Offset != f1.Offset+int64(f1.Size) {
		t.Errorf("padding.Offset = %d, want %d", tag.Padding.Offset, f1.Offset+int64(f1.Size))
	}
}

func TestRemoveFrameRealigns(t *testing.T) {
	tag := newTestBuffer(0)
	tag.allocateFrame("TIT2", []byte{1, 2, 3})
	tag.allocateFrame("TPE1", []byte{4, 5})
	tag.Dirty = false

	tag.RemoveFrame("TIT2")

	if len(tag.Frames) != 1 || tag.Frames[0].ID != "TPE1" {
		t.Fatalf("frames after remove = %+v", tag.Frames)
	}
	if tag.Frames[0].Offset != HeaderSize+FrameHeaderSize {
		t.Errorf("remaining frame offset = %d, want %d", tag.Frames[0].Offset, HeaderSize+FrameHeaderSize)
	}
	if !tag.Dirty {
		t.Error("RemoveFrame should set Dirty when a frame was removed")
	}
}

func TestRemoveFrameMissingIDNoop(t *testing.T) {
	tag := newTestBuffer(0)
	tag.allocateFrame("TIT2", []byte{1})
	tag.Dirty = false

	tag.RemoveFrame("TPE1")

	if tag.Dirty {
		t.Error("RemoveFrame on a nonexistent id should not set Dirty")
	}
	if len(tag.Frames) != 1 {
		t.Errorf("frames = %d, want 1", len(tag.Frames))
	}
}

func TestCheckFooterDropsFooterWhenPaddingPresent(t *testing.T) {
	tag := newTestBuffer(0)
	tag.HasFooter = true
	tag.Flags = FlagFooter
	tag.Padding.Size = 5
	tag.tagEnd = HeaderSize + 5 + FooterSize

	tag.checkFooter()

	if tag.HasFooter {
		t.Error("HasFooter should be cleared when padding is present")
	}
	if tag.Flags&FlagFooter != 0 {
		t.Error("FlagFooter should be cleared")
	}
	if tag.Padding.Size != 5+FooterSize {
		t.Errorf("padding.Size = %d, want %d", tag.Padding.Size, 5+FooterSize)
	}
}

func TestCheckFooterIdempotent(t *testing.T) {
	tag := newTestBuffer(0)
	tag.HasFooter = true
	tag.Flags = FlagFooter
	tag.Padding.Size = 5

	tag.checkFooter()
	first := tag.Padding.Size
	tag.checkFooter()

	if tag.Padding.Size != first {
		t.Errorf("second checkFooter call changed padding.Size: %d -> %d", first, tag.Padding.Size)
	}
}

func TestCheckFooterKeepsFooterWhenNoPadding(t *testing.T) {
	tag := newTestBuffer(0)
	tag.HasFooter = true
	tag.Flags = FlagFooter
	tag.Padding.Size = 0

	tag.checkFooter()

	if !tag.HasFooter {
		t.Error("HasFooter should survive when padding is zero")
	}
}

func TestGetContentSize(t *testing.T) {
	tag := newTestBuffer(0)
	tag.tagEnd = HeaderSize + 100

	if got := tag.GetContentSize(); got != 100 {
		t.Errorf("GetContentSize = %d, want 100", got)
	}

	tag.HasFooter = true
	tag.tagEnd = HeaderSize + 100 + FooterSize
	if got := tag.GetContentSize(); got != 100 {
		t.Errorf("GetContentSize with footer = %d, want 100", got)
	}
}

func TestReallocateFrameNoopOnIdenticalPayload(t *testing.T) {
	tag := newTestBuffer(0)
	tag.allocateFrame("TIT2", []byte{1, 2, 3})
	tag.Dirty = false

	tag.SetFrameBuffer("TIT2", []byte{1, 2, 3})

	if tag.Dirty {
		t.Error("SetFrameBuffer with an identical payload should not set Dirty")
	}
}
