// Package demo is a small task tracking API built on the plugin, the request
// scoped repository and the filter middleware. It doubles as the model source
// for the alchemy CLI: importing the package registers its models with the
// default registry.
package demo
