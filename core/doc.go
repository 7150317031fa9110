/*
Package core contains types and functions used by all packages of fontsweep,
most notably application errors with error codes and user messages.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package core
