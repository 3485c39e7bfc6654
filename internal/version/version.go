package version

// Version is the current enigma release version
const Version = "1.2.0"
