package main

// OsProbe reports the major version of the running OS, 0 if unknown.
type OsProbe interface {
	MajorVersion() int
}

// popupMinMajorVersion is the first Windows release with the Win+Space
// language popup.
const popupMinMajorVersion = 10
