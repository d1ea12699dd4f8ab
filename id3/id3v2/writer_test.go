package id3v2

import (
	"bytes"
	"os"
	"testing"
)

func TestSaveInPlaceShrinkGrowsPadding(t *testing.T) {
	audio := []byte("AUDIOAUDIOAUDIO")
	path := writeTempFile(t, "shrink.mp3", buildTALBTag(audio))

	tag, err := ReadTag(path)
	if err != nil {
		t.Fatalf("ReadTag: %v", err)
	}
	oldPaddingSize := tag.Padding.Size
	oldTagEnd := tag.tagEnd

	small, err := tag.Decoder().EncodeString("A")
	if err != nil {
		t.Fatalf("EncodeString: %v", err)
	}
	oldFrame := tag.GetFrame("TALB")
	shrinkBy := int64(len(oldFrame.Payload) - len(small))
	if shrinkBy <= 0 {
		t.Fatalf("test fixture doesn't shrink: old %d, new %d", len(oldFrame.Payload), len(small))
	}

	tag.SetFrameBuffer("TALB", small)

	if tag.Rewrite {
		t.Fatal("Rewrite should be false when padding absorbs a shrink")
	}
	if tag.tagEnd != oldTagEnd {
		t.Errorf("tagEnd changed on shrink: got %d, want %d", tag.tagEnd, oldTagEnd)
	}
	if tag.Padding.Size != oldPaddingSize+shrinkBy {
		t.Errorf("padding.Size = %d, want %d", tag.Padding.Size, oldPaddingSize+shrinkBy)
	}

	if err := tag.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	gotAudio := raw[tag.tagEnd:]
	if !bytes.Equal(gotAudio, audio) {
		t.Errorf("audio bytes moved or corrupted: got %q, want %q", gotAudio, audio)
	}

	f := tag.GetFrame("TALB")
	if int(f.Size) != len(small) {
		t.Errorf("frame size = %d, want %d", f.Size, len(small))
	}
}

func TestSaveInPlaceGrowExhaustingPadding(t *testing.T) {
	audio := []byte("AUDIOTAIL")
	path := writeTempFile(t, "grow.mp3", buildTALBTag(audio))

	tag, err := ReadTag(path)
	if err != nil {
		t.Fatalf("ReadTag: %v", err)
	}
	oldTagEnd := tag.tagEnd
	paddingSize := tag.Padding.Size

	big := make([]byte, len(tag.GetFrame("TALB").Payload)+int(paddingSize)+6)
	tag.SetFrameBuffer("TALB", big)

	if !tag.Rewrite {
		t.Fatal("Rewrite should be true once padding is exhausted")
	}
	if tag.tagEnd != oldTagEnd+6 {
		t.Errorf("tagEnd grew by %d, want 6", tag.tagEnd-oldTagEnd)
	}

	if err := tag.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	gotAudio := raw[tag.tagEnd:]
	if !bytes.Equal(gotAudio, audio) {
		t.Errorf("audio corrupted after relocation: got %q, want %q", gotAudio, audio)
	}
}

func TestSaveIdempotent(t *testing.T) {
	path := writeTempFile(t, "idem.mp3", buildTALBTag([]byte("AUDIO")))

	tag, err := ReadTag(path)
	if err != nil {
		t.Fatalf("ReadTag: %v", err)
	}

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if err := tag.Save(); err != nil {
		t.Fatalf("Save (not dirty): %v", err)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("Save on a clean tag modified the file")
	}
}

func TestSetFrameBufferSamePayloadLeavesDirtyUnchanged(t *testing.T) {
	path := writeTempFile(t, "nop.mp3", buildTALBTag([]byte("AUDIO")))

	tag, err := ReadTag(path)
	if err != nil {
		t.Fatalf("ReadTag: %v", err)
	}
	buf, _ := tag.GetFrameBuffer("TALB")

	tag.SetFrameBuffer("TALB", buf)
	if tag.Dirty {
		t.Error("SetFrameBuffer with an unchanged payload should not set Dirty")
	}
}

func TestWriteToDifferentPathIsFullRewrite(t *testing.T) {
	audio := []byte("AUDIOBYTES")
	src := writeTempFile(t, "src.mp3", buildTALBTag(audio))

	tag, err := ReadTag(src)
	if err != nil {
		t.Fatalf("ReadTag: %v", err)
	}

	dst := src + ".copy"
	if err := tag.WriteTo(dst); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	defer os.Remove(dst)

	raw, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("ReadFile(dst): %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("ID3")) {
		t.Error("copied file missing ID3 magic")
	}
	if !bytes.HasSuffix(raw, audio) {
		t.Error("copied file does not end with the original audio bytes")
	}
}
