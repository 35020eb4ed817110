package rend3dgl

import (
	"errors"
	"image"
	"image/draw"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// NewTexture2D uploads the image as a mipmapped, repeating 2D texture.
// Color textures should set isSrgb so sampling returns linear values.
//
// The texture is created on texture unit 0 and unit 0 is left with no 2D texture bound.
func (r *Rend3DGL) NewTexture2D(img image.Image, isSrgb bool) (uint32, error) {

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return 0, errors.New("can't create a texture from an empty image")
	}

	rgba, ok := img.(*image.NRGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 {
		rgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	var texId uint32
	gl.GenTextures(1, &texId)
	if texId == 0 {
		return 0, errors.New("failed to generate texture")
	}

	internalFormat := int32(gl.RGBA8)
	if isSrgb {
		internalFormat = gl.SRGB_ALPHA
	}

	r.ActiveTexture(0)
	gl.BindTexture(gl.TEXTURE_2D, texId)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat, int32(bounds.Dx()), int32(bounds.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&rgba.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texId, nil
}

func (r *Rend3DGL) DeleteTexture(texId uint32) {

	if texId == 0 {
		return
	}

	gl.DeleteTextures(1, &texId)
}
