package constants

import "time"

// Face matching reference values. The similarity threshold and top-K count
// were tuned against the registered-sample corpus; changing either shifts
// the false accept/reject balance.
var SIMILARITY_THRESHOLD float64 = 0.6
var TOP_K_MATCHES int = 3

// Face crop preprocessing.
var FACE_CROP_SIZE int = 112
var FACE_PADDING_RATIO float64 = 0.2

// Image acceptance limits.
var MAX_IMAGE_BYTES int = 5 * 1024 * 1024
var MIN_IMAGE_DIMENSION int = 200
var MAX_IMAGE_DIMENSION int = 4096

// Quality thresholds on a 0-255 luminance scale, except sharpness which is
// the normalized Laplacian response.
var MIN_BRIGHTNESS float64 = 40
var MAX_BRIGHTNESS float64 = 240
var MIN_CONTRAST float64 = 20
var MIN_SHARPNESS float64 = 0.4

// A detected face must sit within this fraction of the smaller image
// dimension from the image center.
var FACE_CENTER_TOLERANCE float64 = 0.2

// Scheduling windows.
var CLASS_REMINDER_LEAD = 30 * time.Minute
var ATTENDANCE_WINDOW = 15 * time.Minute
