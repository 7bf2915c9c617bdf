package videogenerator

import (
	"image/color"

	"golang.org/x/image/colornames"

	"saxvideo/fingering"
)

var purpleColor = color.RGBA{147, 51, 234, 255}
var blueColor = color.RGBA{41, 121, 255, 255}
var orangeColor = color.RGBA{255, 136, 0, 255}
var greenColor = color.RGBA{0, 200, 83, 255}
var yellowColor = color.RGBA{255, 214, 0, 255}
var pinkColor = color.RGBA{255, 64, 129, 255}
var redColor = color.RGBA{244, 67, 54, 255}
var cyanColor = color.RGBA{0, 188, 212, 255}
var tealColor = color.RGBA{0, 150, 136, 255}
var deepOrangeColor = color.RGBA{255, 87, 34, 255}
var greyColor = color.RGBA{150, 150, 150, 255}

var backgroundColor = colornames.Black
var playlineColor = colornames.White
var highlightColor = colornames.White
var noteNameColor = colornames.White
var laneAreaColor = color.RGBA{20, 20, 20, 255}
var laneColor = color.RGBA{30, 30, 30, 255}
var separatorColor = color.RGBA{100, 100, 100, 255}
var laneLabelColor = greyColor

var pressedKeyColor = color.NRGBA{255, 255, 255, 255}
var pressedKeyBorder = color.NRGBA{255, 255, 255, 255}
var idleKeyColor = color.NRGBA{255, 255, 255, 40}
var idleKeyBorder = color.NRGBA{255, 255, 255, 100}

var keyColors = map[fingering.KeyID]color.RGBA{
	fingering.Oct:        purpleColor,
	fingering.EbPalm:     blueColor,
	fingering.DPalm:      blueColor,
	fingering.FPalm:      blueColor,
	fingering.FrontF:     orangeColor,
	fingering.L1:         greenColor,
	fingering.L2:         greenColor,
	fingering.L3:         greenColor,
	fingering.Bis:        yellowColor,
	fingering.GSharp:     pinkColor,
	fingering.LowCSharp:  pinkColor,
	fingering.LowB:       pinkColor,
	fingering.LowBb:      pinkColor,
	fingering.ESide:      redColor,
	fingering.CSide:      redColor,
	fingering.BbSide:     redColor,
	fingering.R1:         cyanColor,
	fingering.R2:         cyanColor,
	fingering.R3:         cyanColor,
	fingering.FSharpSide: tealColor,
	fingering.LowEb:      deepOrangeColor,
	fingering.LowC:       deepOrangeColor,
}

func getKeyColor(k fingering.KeyID) color.RGBA {
	if c, ok := keyColors[k]; ok {
		return c
	}
	return greyColor
}

var resolution900p = ScreenResolution{1600, 900}

const framesFolderPath = "_frames"
const outputFolderPath = "output"
const framePattern = "fr%05d.png"
