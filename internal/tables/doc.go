// Package tables contains the fixed lookup tables of the MPEG-4 audio
// transport syntax: the sampling frequency table and the per channel
// configuration SBR header counts used by ELD.
package tables
