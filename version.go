package main

// Version represents the current version of the application
const Version = "1.0.0"

// AppName is used for window titles, notifications and the instance lock
const AppName = "Switchy"
