// Package video writes sketch frames to disk through OpenCV and hands the
// finished file to an external transcoder.
package video

import (
	"path/filepath"
	"strings"
	"time"
)

// PlatformAndroid selects the Motion-JPEG/AVI container, the only pairing
// OpenCV reliably encodes on Android builds.
const PlatformAndroid = "android"

// Codec is a container/encoder pairing for the raw video.
type Codec struct {
	// FourCC is the OpenCV encoder code.
	FourCC string
	// Extension includes the leading dot.
	Extension string
}

var (
	codecMJPG = Codec{FourCC: "MJPG", Extension: ".avi"}
	codecMP4V = Codec{FourCC: "mp4v", Extension: ".mp4"}
)

// CodecFor returns the codec used for raw output on platform.
func CodecFor(platform string) Codec {
	if strings.EqualFold(platform, PlatformAndroid) {
		return codecMJPG
	}
	return codecMP4V
}

// TimestampLayout formats the time component of output names.
const TimestampLayout = "20060102_150405"

// OutputNames returns the raw and transcoded file paths for a video
// created at now in dir.
func OutputNames(dir string, now time.Time, platform string) (raw, transcoded string) {
	base := "vid_" + now.Format(TimestampLayout)
	raw = filepath.Join(dir, base+CodecFor(platform).Extension)
	transcoded = filepath.Join(dir, base+"_h264.mp4")
	return raw, transcoded
}
