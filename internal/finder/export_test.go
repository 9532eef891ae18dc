package finder

var Push = push
