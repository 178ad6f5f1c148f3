package main

// clearColor is the color every swapchain image is cleared to before presentation
var clearColor = [4]float32{0.05, 0.1, 0.2, 1}
