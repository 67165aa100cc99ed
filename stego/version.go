package stego

// Version of the pixelseal codec.
// This variable can be overridden at build time using:
//
//	go build -ldflags "-X github.com/pixelseal/pixelseal/stego.Version=v1.0.0"
var Version = "dev"
