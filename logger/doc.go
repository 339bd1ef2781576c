// Package logger provides structured logging for the library and its binaries.
//
// Loggers are built from config.LoggerSettings and write either human readable
// text to the console or rotated JSON files. A process-wide singleton is
// available for binaries that want a single shared logger.
package logger
