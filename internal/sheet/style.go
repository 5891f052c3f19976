package sheet

import "github.com/xuri/excelize/v2"

const (
	fontFamily  = "Calibri"
	fontSize    = 14
	black       = "000000"
	headerShade = "D3D3D3"
)

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "top", Color: black, Style: 1},
		{Type: "bottom", Color: black, Style: 1},
		{Type: "left", Color: black, Style: 1},
		{Type: "right", Color: black, Style: 1},
	}
}

func centered() *excelize.Alignment {
	return &excelize.Alignment{Horizontal: "center", Vertical: "center"}
}

func headerStyleDef() *excelize.Style {
	return &excelize.Style{
		Font:      &excelize.Font{Family: fontFamily, Size: fontSize, Bold: true, Color: black},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerShade}},
		Border:    thinBorders(),
		Alignment: centered(),
	}
}

func rowStyleDef() *excelize.Style {
	return &excelize.Style{
		Font:      &excelize.Font{Family: fontFamily, Size: fontSize, Color: black},
		Border:    thinBorders(),
		Alignment: centered(),
	}
}
