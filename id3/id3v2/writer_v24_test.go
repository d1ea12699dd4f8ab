package id3v2

import (
	"bytes"
	"os"
	"testing"
)

// buildV24FooterTag constructs a minimal ID3v2.4 tag with the footer flag
// set, zero padding, a single TALB frame holding payloadLen bytes, a
// literal footer, and the given audio bytes.
func buildV24FooterTag(payloadLen int, audio []byte) []byte {
	payload := make([]byte, payloadLen)
	payload[0] = 0x03 // UTF-8, no BOM
	for i := 1; i < payloadLen; i++ {
		payload[i] = 'x'
	}

	frame := make([]byte, FrameHeaderSize+len(payload))
	copy(frame[0:4], "TALB")
	frame[4], frame[5], frame[6], frame[7] = byte(len(payload)>>24), byte(len(payload)>>16), byte(len(payload)>>8), byte(len(payload))
	copy(frame[FrameHeaderSize:], payload)

	contentSize := uint32(len(frame))
	size := encodeSynsafeBytes(contentSize)

	header := make([]byte, HeaderSize)
	header[0], header[1], header[2] = 'I', 'D', '3'
	header[3], header[4], header[5] = Major4, 0, FlagFooter
	copy(header[6:10], size[:])

	footer := make([]byte, FooterSize)
	footer[0], footer[1], footer[2] = '3', 'D', 'I'
	footer[3], footer[4], footer[5] = Major4, 0, FlagFooter
	copy(footer[6:10], size[:])

	out := append([]byte{}, header...)
	out = append(out, frame...)
	out = append(out, footer...)
	out = append(out, audio...)
	return out
}

func TestSaveV24ShrinkDropsFooterInFavorOfPadding(t *testing.T) {
	audio := []byte("TAILAUDIO")
	path := writeTempFile(t, "v24footer.mp3", buildV24FooterTag(25, audio))

	tag, err := ReadTag(path)
	if err != nil {
		t.Fatalf("ReadTag: %v", err)
	}
	if !tag.HasFooter {
		t.Fatal("expected HasFooter to be true on load")
	}
	if tag.Padding.Size != 0 {
		t.Fatalf("expected zero padding on load, got %d", tag.Padding.Size)
	}

	small := make([]byte, 25-20)
	small[0] = 0x03
	tag.SetFrameBuffer("TALB", small)

	if err := tag.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if tag.HasFooter {
		t.Error("HasFooter should be false after checkFooter drops it for padding")
	}
	if tag.Flags&FlagFooter != 0 {
		t.Error("FlagFooter bit should be cleared")
	}
	if tag.Padding.Size < 20 {
		t.Errorf("padding.Size = %d, want >= 20", tag.Padding.Size)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if bytes.Contains(raw, []byte("3DI")) {
		t.Error("footer magic should not appear in the saved file")
	}
	if !bytes.HasSuffix(raw, audio) {
		t.Error("audio bytes should remain at the tail of the file")
	}
}
