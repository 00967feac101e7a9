package main

// General API documentation for swaggo. Generate with
// `swag init -g cmd/classifyd/docs.go` and build with -tags=swagger.
//
// @title           classifyd API
// @version         1.0
// @description     Text classification for cricket umpire signals, phishing emails and phishing URLs.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
