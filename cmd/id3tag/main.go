package main

import (
	"flag"
	"log"
	"os"

	"go.tagkit.dev/mp3tag/id3/id3v2"
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatalf("usage: %s <mp3 filename>", os.Args[0])
	}

	tag, err := id3v2.ReadTag(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("version:     ID3v2.%d.%d", tag.Version.Major, tag.Version.Minor)
	log.Printf("frames:      %d", len(tag.Frames))
	log.Printf("padding:     %d bytes", tag.Padding.Size)

	dec := tag.Decoder()
	for _, id := range []string{"TIT2", "TPE1", "TALB", "TYER", "TCON"} {
		buf, ok := tag.GetFrameBuffer(id)
		if !ok {
			continue
		}
		s, err := dec.DecodeString(buf)
		if err != nil {
			log.Printf("%s: %v", id, err)
			continue
		}
		log.Printf("%s: %q", id, id3v2.CleanDescription(s))
	}

	for _, buf := range tag.GetFrameBuffers("COMM") {
		c, err := dec.DecodeComment(buf)
		if err != nil {
			log.Printf("COMM: %v", err)
			continue
		}
		log.Printf("COMM[%s]: %q / %q", c.Language, id3v2.CleanDescription(c.Short), id3v2.CleanDescription(c.Long))
	}
}
