package pion_test

import (
	"strings"
	"testing"

	psdp "github.com/pion/sdp/v3"
	"github.com/stretchr/testify/require"

	"github.com/ghettovoice/gosdp/internal/errorutil"
	"github.com/ghettovoice/gosdp/interop/pion"
	"github.com/ghettovoice/gosdp/sdp"
)

var seminar = strings.Join([]string{
	"v=0",
	"o=jdoe 2890844526 2890842807 IN IP4 10.47.16.5",
	"s=SDP Seminar",
	"i=A Seminar on the session description protocol",
	"u=http://www.example.com/seminars/sdp.pdf",
	"e=Jane Doe <j.doe@example.com>",
	"p=+1 617 555-6011",
	"c=IN IP4 224.2.17.12/127",
	"b=AS:128",
	"t=2873397496 2873404696",
	"k=prompt",
	"a=recvonly",
	"m=audio 49170 RTP/AVP 0",
	"i=Audio stream",
	"b=AS:64",
	"m=video 51372/2 RTP/AVP 99",
	"c=IN IP4 10.47.16.6",
	"k=clear:secret",
	"a=rtpmap:99 h263-1998/90000",
	"",
}, "\r\n")

func TestToPion(t *testing.T) {
	t.Parallel()

	sess, err := sdp.Parse(seminar, nil)
	require.NoError(t, err)

	sd, err := pion.ToPion(sess)
	require.NoError(t, err)

	require.Equal(t, psdp.SessionName("SDP Seminar"), sd.SessionName)
	require.Equal(t, "jdoe", sd.Origin.Username)
	require.Equal(t, uint64(2890844526), sd.Origin.SessionID)
	require.Equal(t, "10.47.16.5", sd.Origin.UnicastAddress)
	require.NotNil(t, sd.URI)
	require.Equal(t, "http://www.example.com/seminars/sdp.pdf", sd.URI.String())
	require.NotNil(t, sd.ConnectionInformation)
	require.NotNil(t, sd.ConnectionInformation.Address)
	require.Equal(t, "224.2.17.12/127", sd.ConnectionInformation.Address.Address)
	require.Nil(t, sd.ConnectionInformation.Address.TTL)
	require.Len(t, sd.TimeDescriptions, 1)
	require.Equal(t, uint64(2873397496), sd.TimeDescriptions[0].Timing.StartTime)

	require.Len(t, sd.MediaDescriptions, 2)
	audio, video := sd.MediaDescriptions[0], sd.MediaDescriptions[1]
	require.Equal(t, "audio", audio.MediaName.Media)
	require.Equal(t, 49170, audio.MediaName.Port.Value)
	require.Equal(t, []string{"RTP", "AVP"}, audio.MediaName.Protos)
	require.Equal(t, []string{"0"}, audio.MediaName.Formats)
	require.Equal(t, "video", video.MediaName.Media)
	require.NotNil(t, video.MediaName.Port.Range)
	require.Equal(t, 2, *video.MediaName.Port.Range)
	v, ok := video.Attribute("rtpmap")
	require.True(t, ok)
	require.Equal(t, "99 h263-1998/90000", v)
}

func TestFromPion(t *testing.T) {
	t.Parallel()

	sd := &psdp.SessionDescription{
		Origin: psdp.Origin{
			Username:       "-",
			SessionID:      123,
			SessionVersion: 1,
			NetworkType:    "IN",
			AddressType:    "IP4",
			UnicastAddress: "127.0.0.1",
		},
		SessionName: psdp.SessionName("Stream"),
		ConnectionInformation: &psdp.ConnectionInformation{
			NetworkType: "IN",
			AddressType: "IP4",
			Address:     &psdp.Address{Address: "0.0.0.0"},
		},
		TimeDescriptions: []psdp.TimeDescription{{}},
		MediaDescriptions: []*psdp.MediaDescription{
			{
				MediaName: psdp.MediaName{
					Media:   "video",
					Protos:  []string{"RTP", "AVP"},
					Formats: []string{"96"},
				},
				Attributes: []psdp.Attribute{
					{Key: "rtpmap", Value: "96 H264/90000"},
					{Key: "control", Value: "trackID=0"},
				},
			},
		},
	}

	sess, err := pion.FromPion(sd)
	require.NoError(t, err)

	require.Equal(t, uint64(0), sess.Version)
	require.Equal(t, "-", sess.Origin.Username)
	require.Equal(t, uint64(123), sess.Origin.SessionID)
	require.Equal(t, "Stream", sess.Name)
	require.NotNil(t, sess.Connection)
	require.Equal(t, "0.0.0.0", sess.Connection.Address.Host)
	require.Len(t, sess.Timings, 1)
	require.Len(t, sess.Media, 1)

	md := sess.Media[0]
	require.Equal(t, sdp.MediaVideo, md.Media.Name)
	require.Equal(t, uint16(0), md.Media.Port)
	require.Equal(t, "RTP/AVP", md.Media.Proto)
	require.Equal(t, []string{"96"}, md.Media.Formats)
	v, ok := md.Attributes.Get("control")
	require.True(t, ok)
	require.Equal(t, "trackID=0", v)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	sess, err := sdp.Parse(seminar, nil)
	require.NoError(t, err)

	sd, err := pion.ToPion(sess)
	require.NoError(t, err)

	got, err := pion.FromPion(sd)
	require.NoError(t, err)
	require.True(t, got.Equal(sess), "got:\n%+s\nwant:\n%+s", got, sess)
}

func TestErrors(t *testing.T) {
	t.Parallel()

	_, err := pion.ToPion(nil)
	require.ErrorIs(t, err, errorutil.ErrInvalidArgument)

	_, err = pion.FromPion(nil)
	require.ErrorIs(t, err, errorutil.ErrInvalidArgument)

	_, err = pion.FromPion(&psdp.SessionDescription{
		Origin:      psdp.Origin{Username: "-", NetworkType: "IN", AddressType: "IP4", UnicastAddress: "127.0.0.1"},
		SessionName: "no timing",
	})
	require.ErrorIs(t, err, pion.ErrConversion)
}
