package constants

// Ambang batas penilaian & progres video.
const (
	// QuizPassingGrade dipakai mesin penilaian (skor minimal lulus, persen).
	QuizPassingGrade = 70

	// CoursePassingGrade masih dideklarasikan untuk kompatibilitas dengan
	// konfigurasi lama; jalur penilaian saat ini memakai QuizPassingGrade.
	CoursePassingGrade = 80

	// VideoCompletionPercent: video dianggap selesai jika persentase tonton
	// MELEBIHI nilai ini (strict >, bukan >=).
	VideoCompletionPercent = 30

	// MinWatchedSecondsFallback: fallback ketika durasi video tidak diketahui.
	// Belum ada pemanggilnya di jalur progres saat ini.
	MinWatchedSecondsFallback = 60
)
