package preview

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boxMap = `{
"classname" "worldspawn"
{
( -64 -64 -16 ) ( -64 -63 -16 ) ( -64 -64 -15 ) WALL 0 0 0 1 1
( 64 64 16 ) ( 64 64 17 ) ( 64 65 16 ) WALL 0 0 0 1 1
( -64 -64 -16 ) ( -63 -64 -16 ) ( -64 -63 -16 ) FLOOR 0 0 0 1 1
( 0 0 0 ) ( 1 x 0 ) ( 2 2 0 ) BROKEN 0 0 0 1 1
}
}
{
"classname" "func_door"
{
( 128 0 0 ) ( 128 1 0 ) ( 128 0 1 ) DOOR 0 0 0 1 1
}
}
`

func TestCollect(t *testing.T) {
	faces, err := Collect(strings.NewReader(boxMap))
	require.NoError(t, err)
	require.Len(t, faces, 4, "unparseable planes are skipped")

	assert.Equal(t, "worldspawn", faces[0].Classname)
	assert.Equal(t, "func_door", faces[3].Classname)
	assert.Equal(t, "DOOR", faces[3].Plane.Texture.Name)
}

func TestFaceColor(t *testing.T) {
	faces, err := Collect(strings.NewReader(boxMap))
	require.NoError(t, err)

	assert.Equal(t, wallXColor, faceColor(faces[0]))
	assert.Equal(t, wallXColor, faceColor(faces[1]))
	assert.Equal(t, floorColor, faceColor(faces[2]))
	assert.Equal(t, entityColor, faceColor(faces[3]))
}

func TestCompareDimensions(t *testing.T) {
	faces, err := Collect(strings.NewReader(boxMap))
	require.NoError(t, err)

	img := Compare(faces, faces, Options{Size: 64, Supersample: 2})
	assert.Equal(t, image.Rect(0, 0, 132, 64), img.Bounds())
}

func TestEncodeFormats(t *testing.T) {
	faces, err := Collect(strings.NewReader(boxMap))
	require.NoError(t, err)
	img := Compare(faces, nil, Options{Size: 32, Supersample: 1})

	var webp bytes.Buffer
	require.NoError(t, Encode(&webp, img, FormatWebP))
	require.Greater(t, webp.Len(), 12)
	assert.Equal(t, "RIFF", string(webp.Bytes()[:4]))
	assert.Equal(t, "WEBP", string(webp.Bytes()[8:12]))

	decoders := map[string]func(io.Reader) (image.Image, error){
		FormatPNG: png.Decode,
		FormatTGA: tga.Decode,
	}
	for format, decode := range decoders {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, img, format))
			decoded, err := decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, img.Bounds().Size(), decoded.Bounds().Size())
		})
	}

	assert.Error(t, Encode(&bytes.Buffer{}, img, "gif"))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatPNG, FormatFromPath("out/e1m1.PNG", FormatWebP))
	assert.Equal(t, FormatTGA, FormatFromPath("e1m1.tga", FormatWebP))
	assert.Equal(t, FormatWebP, FormatFromPath("e1m1.preview", FormatWebP))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "box.map")
	require.NoError(t, os.WriteFile(in, []byte(boxMap), 0644))

	out := filepath.Join(dir, "previews", "box.png")
	require.NoError(t, WriteFile(out, in, in, Options{Size: 48, Supersample: 2, Format: FormatPNG}))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 48, cfg.Height)
}
