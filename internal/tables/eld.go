package tables

// eldSBRHeaders is the number of SBR headers carried by an ELD SBR config,
// indexed by channel configuration.
var eldSBRHeaders = [8]int{0, 1, 1, 2, 3, 3, 3, 4}

// NumELDSBRHeaders returns the number of per-channel SBR headers in an
// ELDSBRConfig for the given channel configuration. Configurations outside
// 0-7 carry none.
func NumELDSBRHeaders(channelConfiguration uint8) int {
	if int(channelConfiguration) >= len(eldSBRHeaders) {
		return 0
	}
	return eldSBRHeaders[channelConfiguration]
}
