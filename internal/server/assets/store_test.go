package assets

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name     string
		userID   int64
		original string
		want     string
	}{
		{"plain", 1, "me.png", "1_me.png"},
		{"lowercased", 2, "Me.PNG", "2_me.png"},
		{"spaces", 3, "My Holiday Pic.jpg", "3_my_holiday_pic.jpg"},
		{"tabs and repeated spaces", 4, "a  b\tc.gif", "4_a__b_c.gif"},
		{"unix dirs stripped", 5, "../../etc/passwd", "5_passwd"},
		{"windows dirs stripped", 6, `C:\Users\Ana\face.png`, "6_face.png"},
		{"empty", 7, "", "7_picture"},
		{"dotdot", 8, "..", "8_picture"},
		{"trailing slash", 9, "dir/", "9_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.userID, tt.original))
		})
	}
}

func TestFileName_Long(t *testing.T) {
	name := FileName(12, strings.Repeat("a", 300)+".jpeg")
	assert.Len(t, name, maxNameLen)
	assert.True(t, strings.HasPrefix(name, "12_aaa"))
	assert.True(t, strings.HasSuffix(name, ".jpeg"))

	multi := FileName(1, strings.Repeat("é", 200)+".png")
	assert.LessOrEqual(t, len(multi), maxNameLen)
	assert.True(t, utf8.ValidString(multi))
	assert.True(t, strings.HasSuffix(multi, ".png"))
}

func TestFileName_DistinctPerUser(t *testing.T) {
	assert.NotEqual(t, FileName(1, "me.png"), FileName(11, "me.png"))
	assert.NotEqual(t, FileName(1, "1_me.png"), FileName(11, "me.png"))
	assert.Equal(t, FileName(12, "x.png"), FileName(12, "x.png"), "deterministic")
}
