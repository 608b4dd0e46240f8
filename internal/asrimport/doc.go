// Package asrimport reads speech recognizer output into stored transcriptions.
//
// Two formats are understood: tab-separated lists of "path<TAB>text" lines,
// and the XML stream Julius emits in module mode. Julius results carry no file
// names, so they are paired with the file list that was fed to the recognizer.
package asrimport
