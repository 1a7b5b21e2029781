package types

// VideoInfo is the metadata for a media URL, fetched without downloading.
type VideoInfo struct {
	Title     string `json:"title"`
	Channel   string `json:"channel"`
	Duration  int    `json:"duration"` // seconds
	Thumbnail string `json:"thumbnail"`
	VideoID   string `json:"video_id"`
}

// ConvertRequest is the body of a conversion request
type ConvertRequest struct {
	URL    string `json:"url" binding:"required"`
	Format string `json:"format" binding:"required"`
}

// ConvertResponse is returned once a conversion job has been accepted
type ConvertResponse struct {
	JobID   string `json:"job_id"`
	Message string `json:"message"`
}

// ConvertedFile represents a discovered artifact in the output directory
type ConvertedFile struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Format   string `json:"format"` // "mp3" or "mp4"
	Title    string `json:"title,omitempty"`
	Artist   string `json:"artist,omitempty"`
}
