package entity

import "regexp"

// youtubeID matches watch, short-link, embed and shorts URLs and captures the 11-char id.
var youtubeID = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|embed/|v/|shorts/)|youtu\.be/)([A-Za-z0-9_-]{11})`)

// YouTubeID extracts the video id from a YouTube URL, or "" when none is found.
func YouTubeID(videoURL string) string {
	m := youtubeID.FindStringSubmatch(videoURL)
	if m == nil {
		return ""
	}
	return m[1]
}

// YouTubeEmbedURL returns the embeddable player URL for videoURL.
func YouTubeEmbedURL(videoURL string) string {
	id := YouTubeID(videoURL)
	if id == "" {
		return ""
	}
	return "https://www.youtube.com/embed/" + id
}

// YouTubeThumbnailURL returns the high quality thumbnail for videoURL.
func YouTubeThumbnailURL(videoURL string) string {
	id := YouTubeID(videoURL)
	if id == "" {
		return ""
	}
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
}
