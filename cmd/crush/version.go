package main

var version = "devel"
