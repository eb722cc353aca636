// Package layout holds the page chrome shared by every web page.
package layout

// FlashMessage is a one-shot notice shown at the top of the next page
type FlashMessage struct {
	Type    string // info, success, error
	Message string
}

// PageData holds data common to all pages
type PageData struct {
	Title string
	Flash *FlashMessage
}

func pageTitle(data PageData) string {
	if data.Title == "" {
		return "wordgrid"
	}
	return data.Title + " - wordgrid"
}

func flashClass(f *FlashMessage) string {
	return "flash flash-" + f.Type
}
